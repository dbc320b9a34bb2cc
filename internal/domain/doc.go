// Package domain contains the core entities of the task manager: users,
// tasks and their validation rules. It has no dependencies on storage,
// transport or any other outer layer.
package domain
