package request

type CompanySignupRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password" validate:"required,notblank,min=8,max=72"`
}

type CompanySigninRequest struct {
	Name     string `json:"name" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}
