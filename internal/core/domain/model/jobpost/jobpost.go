package jobpost

import (
	"errors"

	"careshift/internal/core/domain/model/kernel"
	"careshift/internal/pkg/errs"
)

// ErrJobPostIsNotConstructed is returned when a JobPost instance was not
// created through one of the package constructors.
var ErrJobPostIsNotConstructed = errors.New("JobPost must be created via NewJobPost constructor")

// Shift length bounds in hours for a single job.
const (
	MinShiftLengthHours = 1
	MaxShiftLengthHours = 24
)

// Care recipient age bounds in years.
const (
	MinRecipientAge = 0
	MaxRecipientAge = 120
)

// Details carries the caller-supplied attributes of a job post: where and
// when the shift happens, who it is for, what it pays and which reference
// attributes (care needs, languages, preferences) the owner declared.
type Details struct {
	Postcode         kernel.Postcode
	Address          string
	Schedule         kernel.Schedule
	ShiftLengthHours int
	RecipientGender  Gender
	RecipientAge     int
	CaregiverGender  Gender
	Payment          Payment
	CareNeeds        []string
	Languages        []string
	PreferenceIDs    []kernel.UUID
}

// JobPost is the aggregate root for a care shift offered by a job poster.
//
// Invariants:
//   - identity, owner, postcode and schedule are always valid
//   - shift length is within [MinShiftLengthHours, MaxShiftLengthHours]
//   - recipient age is within [MinRecipientAge, MaxRecipientAge]
//   - status transitions follow the Status state machine
//   - the recurrence descriptor only ever lives on a parent/template post
//   - posts are soft-deleted, never removed
type JobPost struct {
	id      kernel.UUID
	ownerID kernel.UUID

	postcode         kernel.Postcode
	address          string
	schedule         kernel.Schedule
	shiftLengthHours int

	recipientGender Gender
	recipientAge    int
	caregiverGender Gender

	payment Payment

	careNeeds     []string
	languages     []string
	preferenceIDs []kernel.UUID

	status      Status
	parentJobID *kernel.UUID
	recurrence  *Recurrence
	deleted     bool

	isConstructed bool
}

// NewJobPost creates a single (non-recurring) job post in Open status.
func NewJobPost(id kernel.UUID, ownerID kernel.UUID, details Details) (*JobPost, error) {
	post := &JobPost{
		status:        Open,
		isConstructed: true,
	}

	if err := errors.Join(
		post.setID(id),
		post.setOwnerID(ownerID),
		post.setDetails(details),
	); err != nil {
		return nil, err
	}

	return post, nil
}

// NewRecurringJobPost creates the parent/template post of a recurring series.
// The parent carries the recurrence descriptor and owns the seed date; child
// posts are spawned from it via SpawnChild.
func NewRecurringJobPost(
	id kernel.UUID, ownerID kernel.UUID, details Details, recurrence Recurrence,
) (*JobPost, error) {
	post, err := NewJobPost(id, ownerID, details)
	if err != nil {
		return nil, err
	}

	if recurrence.EndDate().Before(details.Schedule.Date()) {
		return nil, errs.NewValueIsInvalidError("recurrence end date precedes the job date")
	}

	post.recurrence = &recurrence
	return post, nil
}

// SpawnChild clones this parent post onto a new date keeping everything else,
// linking the child back via its parent job ID. Only a recurring parent may
// spawn children.
func (j *JobPost) SpawnChild(id kernel.UUID, schedule kernel.Schedule) (*JobPost, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	if j.recurrence == nil {
		return nil, errs.NewInvalidStateError("spawn child job post", "not a recurring parent")
	}

	details := j.Details()
	details.Schedule = schedule

	child, err := NewJobPost(id, j.ownerID, details)
	if err != nil {
		return nil, err
	}

	parentID := j.id
	child.parentJobID = &parentID
	return child, nil
}

// CloneForSchedule copies this post's immutable attributes onto a new post
// with a new date/time. Used by the repost operations; the clone starts Open
// with no recurrence and no parent link.
func (j *JobPost) CloneForSchedule(id kernel.UUID, schedule kernel.Schedule) (*JobPost, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	details := j.Details()
	details.Schedule = schedule
	return NewJobPost(id, j.ownerID, details)
}

// RestoreJobPost reconstructs a job post from persistence without applying
// creation-time rules. Field validity is still enforced.
func RestoreJobPost(
	id kernel.UUID,
	ownerID kernel.UUID,
	details Details,
	status Status,
	parentJobID *kernel.UUID,
	recurrence *Recurrence,
	deleted bool,
) (*JobPost, error) {
	post := &JobPost{
		isConstructed: true,
	}

	if err := errors.Join(
		post.setID(id),
		post.setOwnerID(ownerID),
		post.setDetails(details),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	post.status = status
	post.parentJobID = parentJobID
	post.recurrence = recurrence
	post.deleted = deleted
	return post, nil
}

// Validate ensures the JobPost was created through a package constructor.
func (j *JobPost) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobPostIsNotConstructed
	}
	return nil
}

// IsEqual compares two job posts by identity.
func (j *JobPost) IsEqual(other *JobPost) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *JobPost) ID() kernel.UUID             { return j.id }
func (j *JobPost) OwnerID() kernel.UUID        { return j.ownerID }
func (j *JobPost) Postcode() kernel.Postcode   { return j.postcode }
func (j *JobPost) Address() string             { return j.address }
func (j *JobPost) Schedule() kernel.Schedule   { return j.schedule }
func (j *JobPost) ShiftLengthHours() int       { return j.shiftLengthHours }
func (j *JobPost) RecipientGender() Gender     { return j.recipientGender }
func (j *JobPost) RecipientAge() int           { return j.recipientAge }
func (j *JobPost) CaregiverGender() Gender     { return j.caregiverGender }
func (j *JobPost) Payment() Payment            { return j.payment }
func (j *JobPost) Status() Status              { return j.status }
func (j *JobPost) ParentJobID() *kernel.UUID   { return j.parentJobID }
func (j *JobPost) Recurrence() *Recurrence     { return j.recurrence }
func (j *JobPost) IsDeleted() bool             { return j.deleted }
func (j *JobPost) IsRecurringParent() bool     { return j.recurrence != nil }

// CareNeeds returns the declared care-need references.
func (j *JobPost) CareNeeds() []string { return j.careNeeds }

// Languages returns the declared required languages.
func (j *JobPost) Languages() []string { return j.languages }

// PreferenceIDs returns the declared preference set applicants may assert.
func (j *JobPost) PreferenceIDs() []kernel.UUID { return j.preferenceIDs }

// DeclaresPreference reports whether id belongs to the declared preference set.
func (j *JobPost) DeclaresPreference(id kernel.UUID) bool {
	for _, p := range j.preferenceIDs {
		if p.IsEqual(id) {
			return true
		}
	}
	return false
}

// Details returns a copy of the caller-supplied attributes, with relation
// slices copied so mutations on the result do not leak into the aggregate.
func (j *JobPost) Details() Details {
	return Details{
		Postcode:         j.postcode,
		Address:          j.address,
		Schedule:         j.schedule,
		ShiftLengthHours: j.shiftLengthHours,
		RecipientGender:  j.recipientGender,
		RecipientAge:     j.recipientAge,
		CaregiverGender:  j.caregiverGender,
		Payment:          j.payment,
		CareNeeds:        append([]string(nil), j.careNeeds...),
		Languages:        append([]string(nil), j.languages...),
		PreferenceIDs:    append([]kernel.UUID(nil), j.preferenceIDs...),
	}
}

// IsOwnedBy reports whether userID is the posting owner.
func (j *JobPost) IsOwnedBy(userID kernel.UUID) bool {
	return j.ownerID.IsEqual(userID)
}

// Approve marks the post Approved when one of its applications is accepted.
func (j *JobPost) Approve() error {
	newStatus, err := j.status.Approve()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Complete marks the post Completed when the accepted worker finishes.
func (j *JobPost) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Close marks the post Closed on owner closure or repost supersession.
func (j *JobPost) Close() error {
	newStatus, err := j.status.Close()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Cancel marks the post Cancelled when the owner withdraws it.
func (j *JobPost) Cancel() error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Reopen returns an Approved post to Open after its accepted application is
// cancelled, regardless of whether other pending applications exist.
func (j *JobPost) Reopen() error {
	newStatus, err := j.status.Reopen()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// SoftDelete flags the post deleted. Job posts are never hard-deleted.
func (j *JobPost) SoftDelete() {
	j.deleted = true
}

// Patch is a partial update to a job post. Nil fields are left untouched;
// relation slices, when present, replace the existing sets wholesale
// (replace semantics, not diff semantics).
type Patch struct {
	Postcode         *kernel.Postcode
	Address          *string
	Schedule         *kernel.Schedule
	ShiftLengthHours *int
	RecipientGender  *Gender
	RecipientAge     *int
	CaregiverGender  *Gender
	Payment          *Payment
	CareNeeds        []string
	Languages        []string
	PreferenceIDs    []kernel.UUID
}

// ApplyPatch applies a partial update, re-validating every touched field.
func (j *JobPost) ApplyPatch(patch Patch) error {
	if err := j.Validate(); err != nil {
		return err
	}

	details := j.Details()
	if patch.Postcode != nil {
		details.Postcode = *patch.Postcode
	}
	if patch.Address != nil {
		details.Address = *patch.Address
	}
	if patch.Schedule != nil {
		details.Schedule = *patch.Schedule
	}
	if patch.ShiftLengthHours != nil {
		details.ShiftLengthHours = *patch.ShiftLengthHours
	}
	if patch.RecipientGender != nil {
		details.RecipientGender = *patch.RecipientGender
	}
	if patch.RecipientAge != nil {
		details.RecipientAge = *patch.RecipientAge
	}
	if patch.CaregiverGender != nil {
		details.CaregiverGender = *patch.CaregiverGender
	}
	if patch.Payment != nil {
		details.Payment = *patch.Payment
	}
	if patch.CareNeeds != nil {
		details.CareNeeds = patch.CareNeeds
	}
	if patch.Languages != nil {
		details.Languages = patch.Languages
	}
	if patch.PreferenceIDs != nil {
		details.PreferenceIDs = patch.PreferenceIDs
	}

	return j.setDetails(details)
}

func (j *JobPost) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *JobPost) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	j.ownerID = ownerID
	return nil
}

func (j *JobPost) setDetails(details Details) error {
	if err := errors.Join(
		details.Postcode.Validate(),
		details.Schedule.Validate(),
		validateShiftLength(details.ShiftLengthHours),
		validateRecipientAge(details.RecipientAge),
		validateGender("recipientGender", details.RecipientGender),
		validateGender("caregiverGender", details.CaregiverGender),
		validatePayment(details.Payment),
	); err != nil {
		return err
	}

	j.postcode = details.Postcode
	j.address = details.Address
	j.schedule = details.Schedule
	j.shiftLengthHours = details.ShiftLengthHours
	j.recipientGender = details.RecipientGender
	j.recipientAge = details.RecipientAge
	j.caregiverGender = details.CaregiverGender
	j.payment = details.Payment
	j.careNeeds = details.CareNeeds
	j.languages = details.Languages
	j.preferenceIDs = details.PreferenceIDs
	return nil
}

func validateShiftLength(hours int) error {
	if hours < MinShiftLengthHours || hours > MaxShiftLengthHours {
		return errs.NewValueIsOutOfRangeError("shiftLengthHours", hours,
			MinShiftLengthHours, MaxShiftLengthHours)
	}
	return nil
}

func validateRecipientAge(age int) error {
	if age < MinRecipientAge || age > MaxRecipientAge {
		return errs.NewValueIsOutOfRangeError("recipientAge", age,
			MinRecipientAge, MaxRecipientAge)
	}
	return nil
}

func validateGender(paramName string, g Gender) error {
	if _, err := ParseGender(string(g)); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return nil
}

func validatePayment(p Payment) error {
	_, err := NewPayment(p.Type, p.Cost)
	return err
}
