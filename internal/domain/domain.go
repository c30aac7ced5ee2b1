// Package domain holds the business error taxonomy shared by services and
// the HTTP boundary. Services return *domain.Error values; the boundary maps
// them onto the response envelope and a localized message.
package domain
