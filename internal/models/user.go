// Package models содержит доменную модель пользователя админ-панели,
// включающую данные учётной записи, хэш пароля и дату создания.
package models

import "time"

// User представляет администратора сервиса (владельца студии).
type User struct {
	UUID         string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или viewer
	CreatedAt    time.Time // Дата создания учётной записи
}
