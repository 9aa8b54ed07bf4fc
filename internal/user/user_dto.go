package user

type CreateUserRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=255"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"required,oneof=employee manager admin"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Role      *string `json:"role" binding:"omitempty,oneof=employee manager admin"`
	ManagerID *string `json:"manager_id" binding:"omitempty,uuid"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	ManagerID *string       `json:"manager_id,omitempty"`
	Manager   *UserSummary  `json:"manager,omitempty"`
	Reportees []UserSummary `json:"reportees,omitempty"`
}

func mapToSummary(u User) UserSummary {
	return UserSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	if u.Manager != nil {
		m := mapToSummary(*u.Manager)
		resp.Manager = &m
	}
	if len(u.Reportees) > 0 {
		resp.Reportees = make([]UserSummary, len(u.Reportees))
		for i, rep := range u.Reportees {
			resp.Reportees[i] = mapToSummary(rep)
		}
	}
	return resp
}

// ToResponse exposes the response mapping to sibling features (auth embeds
// the user payload in its login response).
func ToResponse(u User) UserResponse {
	return mapToResponse(u)
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
