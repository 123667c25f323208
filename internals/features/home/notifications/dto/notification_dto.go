package dto

// BroadcastRequest: pengumuman admin ke satu role (atau semua kalau kosong).
type BroadcastRequest struct {
	Role  string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	Title string `json:"title" validate:"required,min=1,max=255"`
	Body  string `json:"body" validate:"required,min=1,max=2000"`
}
