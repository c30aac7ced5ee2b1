// Package service implements the business operations behind the HTTP
// surface. Services validate input, enforce domain rules and compose
// repository statements under transactions.
package service

import "appforge/internal/domain/models"

// IDGenerator supplies fresh entity identifiers.
type IDGenerator interface {
	NextID() (models.ID, error)
}
