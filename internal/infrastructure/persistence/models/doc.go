// Package models contains GORM persistence models for aggregates whose
// domain types carry no persistence concerns. Each model maps to and from
// its domain counterpart via ToDomain/FromDomain.
package models
