package staff

// CreateStaffRequest creates a staff member.
type CreateStaffRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Position string  `json:"position" validate:"max=120"`
	Salary   float64 `json:"salary" validate:"required,gt=0"`
}

// UpdateStaffRequest edits a staff member. Omitted fields stay unchanged.
type UpdateStaffRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Position *string  `json:"position,omitempty" validate:"omitempty,max=120"`
	Salary   *float64 `json:"salary,omitempty" validate:"omitempty,gt=0"`
	Status   *Status  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
