package models

type RegisterProjectRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginProjectRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	Project Project `json:"project"`
}

type CreateVersionRequest struct {
	VersionNumber string `json:"version_number" validate:"required"`
}

type ReleaseVersionRequest struct {
	ReleasedAt *string `json:"released_at"`
}

type CreateChangeRequest struct {
	Kind   string `json:"kind" validate:"required"`
	Body   string `json:"body" validate:"required"`
	Author string `json:"author" validate:"required"`
}

type MoveChangeRequest struct {
	VersionNumber string `json:"version_number" validate:"required"`
}

type VersionListParams struct {
	PageSize  *int    `form:"page_size"`
	PageToken *string `form:"page_token"`
}
