// Package models declares the persisted entities and their profile enums.
package models
