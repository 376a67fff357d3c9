// Package utils reúne helpers pequenos demais para merecerem pacote próprio.
package utils

import (
	"fmt"
	"strings"
)

// SliceToString formata um slice como um bloco legível para o cliente de
// terminal, com o índice de cada item na frente.
func SliceToString[T any](label string, items []T) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "----- %s -----\n", label)

	if len(items) == 0 {
		sb.WriteString("(vazio)\n")
	} else {
		for i, item := range items {
			fmt.Fprintf(&sb, "[%d] %v\n", i, item)
		}
	}

	sb.WriteString("--------------------\n")
	return sb.String()
}
