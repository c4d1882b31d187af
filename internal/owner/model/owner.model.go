package model

import "time"

// Owner is one row of app_owners. Password holds the hex digest of the
// plaintext, never the plaintext itself.
type Owner struct {
	ID           int64
	Owner        string
	Password     string
	CreationTime time.Time
	Heading      *string
	Description  *string
}

type CreateOwnerResponse struct {
	ID int64 `json:"id"`
}

// OwnerProjection is the fetch response shape. The password column is
// deliberately absent.
type OwnerProjection struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"owner"`
	CreationTime time.Time `json:"creation_time"`
	Heading      *string   `json:"heading"`
	Description  *string   `json:"description"`
}

// PatchProjection is the patch response shape.
type PatchProjection struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"owner"`
	CreationTime time.Time `json:"creation_time"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
