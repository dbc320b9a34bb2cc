// Package service contains the application's business operations,
// orchestrating the store interfaces and emitting mutation events.
package service
