package dto

type CreateMemberRequest struct {
	Name string  `json:"name"`
	Role *string `json:"role"`
}

type UpdateMemberRequest struct {
	Name *string          `json:"name"`
	Role Nullable[string] `json:"role"`
}
