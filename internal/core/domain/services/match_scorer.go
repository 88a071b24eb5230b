package services

import (
	"math"
	"strings"

	"careshift/internal/core/domain/model/jobpost"
	"careshift/internal/core/domain/model/kernel"
)

// WorkerProfile is the slice of a worker's profile the scorer needs.
type WorkerProfile struct {
	Gender    jobpost.Gender
	Languages []string
}

// MatchScorer computes a 0-100 compatibility score between a job post's
// requirements and a candidate worker's profile plus the preference
// selections attached to their application.
//
// Three equally weighted criteria contribute up to one point each:
//
//  1. Gender: full credit when the job accepts any caregiver gender or the
//     worker's gender matches the requested one.
//  2. Languages: full credit when the job requires none; otherwise the
//     fraction of required languages the worker speaks.
//  3. Preferences: full credit when the job declares none; otherwise the
//     fraction of declared preferences the applicant asserted.
//
// The score is round(100 x sum/3). It ranks candidates for display and
// never blocks an operation.
type MatchScorer struct{}

// NewMatchScorer creates a new MatchScorer instance.
func NewMatchScorer() MatchScorer {
	return MatchScorer{}
}

// Score computes the match percentage of a worker's application against a job.
func (m MatchScorer) Score(
	job *jobpost.JobPost, worker WorkerProfile, assertedPreferences []kernel.UUID,
) (int, error) {
	if err := job.Validate(); err != nil {
		return 0, err
	}

	credits := m.genderCredit(job, worker) +
		m.languageCredit(job, worker) +
		m.preferenceCredit(job, assertedPreferences)

	return int(math.Round(100 * credits / 3)), nil
}

func (m MatchScorer) genderCredit(job *jobpost.JobPost, worker WorkerProfile) float64 {
	if job.CaregiverGender().Accepts(worker.Gender) {
		return 1
	}
	return 0
}

func (m MatchScorer) languageCredit(job *jobpost.JobPost, worker WorkerProfile) float64 {
	required := job.Languages()
	if len(required) == 0 {
		return 1
	}

	spoken := make(map[string]bool, len(worker.Languages))
	for _, lang := range worker.Languages {
		spoken[strings.ToLower(strings.TrimSpace(lang))] = true
	}

	matched := 0
	for _, lang := range required {
		if spoken[strings.ToLower(strings.TrimSpace(lang))] {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

func (m MatchScorer) preferenceCredit(job *jobpost.JobPost, asserted []kernel.UUID) float64 {
	declared := job.PreferenceIDs()
	if len(declared) == 0 {
		return 1
	}

	matched := 0
	for _, id := range declared {
		for _, a := range asserted {
			if id.IsEqual(a) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(declared))
}
