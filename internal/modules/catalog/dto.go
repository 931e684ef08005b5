package catalog

type CreateTourRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price" binding:"required"`
	Location    string  `json:"location"`
	Duration    string  `json:"duration"`
	Capacity    int     `json:"capacity" binding:"required"`
}

type UpdateTourRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Price       *float64 `json:"price"`
	Location    *string  `json:"location"`
	Duration    *string  `json:"duration"`
	Capacity    *int     `json:"capacity"`
	IsActive    *bool    `json:"is_active"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Website   *string `json:"website"`
	WorkHours *string `json:"work_hours"`
}
