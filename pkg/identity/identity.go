// Package identity реализует необратимый дайджест идентификатора сотрудника.
// Сервис нигде не хранит исходный идентификатор - только SHA-256 от
// нормализованного значения с добавлением секретного pepper.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hasher вычисляет дайджест идентификатора
type Hasher struct {
	pepper string
}

// NewHasher создает Hasher с заданным pepper
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Digest возвращает hex-представление SHA-256(normalize(raw) + pepper).
// Детерминированная функция: одинаковый ввод всегда дает одинаковый дайджест.
func (h *Hasher) Digest(raw string) string {
	sum := sha256.Sum256([]byte(Normalize(raw) + h.pepper))
	return hex.EncodeToString(sum[:])
}

// Normalize убирает из идентификатора все символы, кроме цифр
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
