package fiber

type CreateSiteRequest struct {
	Name              string `json:"name" example:"Blog"`
	Domain            string `json:"domain" example:"blog.example.com"`
	SessionTimeoutMin int    `json:"sessionTimeoutMin" example:"30"`
}

type UpdateSiteRequest struct {
	IsActive *bool `json:"isActive"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type DeleteSiteResponse struct {
	OK          bool  `json:"ok"`
	DeletedHits int64 `json:"deletedHits"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_site_input"`
	Message string `json:"message,omitempty"`
}
