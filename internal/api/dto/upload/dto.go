package upload

type UploadResponse struct {
	SubmissionLink string `json:"submission_link"`
}
