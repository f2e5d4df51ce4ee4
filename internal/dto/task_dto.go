package dto

// WelcomeEmailTask is the payload queued for the background mail worker.
type WelcomeEmailTask struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
