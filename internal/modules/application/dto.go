package application

type SubmitApplicationRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	CompanyAddress string `json:"company_address" binding:"required"`
	CompanyWebsite string `json:"company_website"`
	WorkHours      string `json:"work_hours"`
}

type RejectApplicationRequest struct {
	Reason string `json:"reason" binding:"required"`
}
