package utils

import (
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 9
)

// GenerateID gera um identificador no formato <prefixo>_<timestamp base36>_<aleatório>
func GenerateID(prefix string) (string, error) {
	random, err := gonanoid.Generate(characters, idLength)
	if err != nil {
		return "", err
	}

	return prefix + "_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + random, nil
}
