package record

import (
	"time"

	"github.com/google/uuid"
)

// Record is a schema-flexible row: the only enforced structure of Data comes
// from the type registry, which the query pipeline treats as ground truth.
type Record struct {
	ID              uuid.UUID              `json:"id"`
	TypeSlug        string                 `json:"type_slug"`
	OwnerID         *uuid.UUID             `json:"owner_id,omitempty"`
	AttachmentType  string                 `json:"attachment_type,omitempty"`
	VisibilityRoles []string               `json:"visibility_roles"`
	Data            map[string]interface{} `json:"data"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

type CreateRecordRequest struct {
	Data            map[string]interface{} `json:"data" binding:"required"`
	AttachmentType  string                 `json:"attachment_type"`
	VisibilityRoles []string               `json:"visibility_roles"`
}

type UpdateRecordRequest struct {
	Data            map[string]interface{} `json:"data"`
	AttachmentType  *string                `json:"attachment_type"`
	VisibilityRoles []string               `json:"visibility_roles"`
}
