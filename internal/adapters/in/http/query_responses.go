package http

import (
	"careshift/internal/core/application/usecases/queries"
	"careshift/internal/core/domain/model/kernel"
)

type jobPostSummaryResponse struct {
	ID                string   `json:"id"`
	OwnerID           string   `json:"ownerId"`
	Postcode          string   `json:"postcode"`
	Address           string   `json:"address"`
	Date              string   `json:"date"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	ShiftLengthHours  int      `json:"shiftLengthHours"`
	RecipientGender   string   `json:"recipientGender"`
	RecipientAge      int      `json:"recipientAge"`
	CaregiverGender   string   `json:"caregiverGender"`
	PaymentType       string   `json:"paymentType"`
	PaymentCost       float64  `json:"paymentCost"`
	Status            string   `json:"status"`
	ParentJobID       *string  `json:"parentJobId,omitempty"`
	CareNeeds         []string `json:"careNeeds"`
	Languages         []string `json:"languages"`
	DistanceKm        *float64 `json:"distanceKm,omitempty"`
	DistanceMiles     *float64 `json:"distanceMiles,omitempty"`
	ApplicationStatus *string  `json:"applicationStatus,omitempty"`
}

type jobPostListResponse struct {
	JobPosts []jobPostSummaryResponse `json:"jobPosts"`
	Total    int                      `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"pageSize"`
}

func toJobPostListResponse(result queries.GetAllJobPostsQueryResponse) jobPostListResponse {
	response := jobPostListResponse{
		JobPosts: make([]jobPostSummaryResponse, 0, len(result.JobPosts)),
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}

	for _, post := range result.JobPosts {
		summary := jobPostSummaryResponse{
			ID:                post.ID.String(),
			OwnerID:           post.OwnerID.String(),
			Postcode:          post.Postcode,
			Address:           post.Address,
			Date:              post.Date,
			StartTime:         post.StartTime,
			EndTime:           post.EndTime,
			ShiftLengthHours:  post.ShiftLengthHours,
			RecipientGender:   post.RecipientGender,
			RecipientAge:      post.RecipientAge,
			CaregiverGender:   post.CaregiverGender,
			PaymentType:       post.PaymentType,
			PaymentCost:       post.PaymentCost,
			Status:            post.Status,
			CareNeeds:         post.CareNeeds,
			Languages:         post.Languages,
			DistanceKm:        post.DistanceKm,
			DistanceMiles:     post.DistanceMiles,
			ApplicationStatus: post.ApplicationStatus,
		}
		if post.ParentJobID != nil {
			parentID := post.ParentJobID.String()
			summary.ParentJobID = &parentID
		}
		response.JobPosts = append(response.JobPosts, summary)
	}

	return response
}

type applicationSummaryResponse struct {
	ID            string   `json:"id"`
	JobPostID     string   `json:"jobPostId"`
	WorkerID      string   `json:"workerId"`
	Status        string   `json:"status"`
	Message       string   `json:"message"`
	PreferenceIDs []string `json:"preferenceIds"`
	MatchScore    int      `json:"matchScore"`
	DistanceKm    float64  `json:"distanceKm"`
	DistanceMiles float64  `json:"distanceMiles"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	ReviewCount   int      `json:"reviewCount"`
}

type applicationListResponse struct {
	Applications []applicationSummaryResponse `json:"applications"`
	Total        int                          `json:"total"`
	Page         int                          `json:"page"`
	PageSize     int                          `json:"pageSize"`
}

func toApplicationListResponse(result queries.GetJobApplicationsQueryResponse) applicationListResponse {
	response := applicationListResponse{
		Applications: make([]applicationSummaryResponse, 0, len(result.Applications)),
		Total:        result.Total,
		Page:         result.Page,
		PageSize:     result.PageSize,
	}

	for _, app := range result.Applications {
		response.Applications = append(response.Applications, applicationSummaryResponse{
			ID:            app.ID.String(),
			JobPostID:     app.JobPostID.String(),
			WorkerID:      app.WorkerID.String(),
			Status:        app.Status,
			Message:       app.Message,
			PreferenceIDs: uuidStrings(app.PreferenceIDs),
			MatchScore:    app.MatchScore,
			DistanceKm:    app.DistanceKm,
			DistanceMiles: app.DistanceMiles,
			AverageRating: app.AverageRating,
			ReviewCount:   app.ReviewCount,
		})
	}

	return response
}

func uuidStrings(ids []kernel.UUID) []string {
	if len(ids) == 0 {
		return nil
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
