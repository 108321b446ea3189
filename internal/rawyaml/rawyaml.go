// Package rawyaml turns document text into the untyped tree the rest of the
// pipeline walks. It performs no semantic checks.
package rawyaml

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-viewdef/pkg/diag"
)

var lineRE = regexp.MustCompile(`line (\d+):`)

// Decode deserializes data into maps, slices and scalars. A failure yields
// exactly one SYNTAX diagnostic; when the decoder reports a position the
// diagnostic carries the line converted to zero-based.
func Decode(data []byte) (any, *diag.Diagnostic) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		d := syntaxDiagnostic(err)
		return nil, &d
	}
	return tree, nil
}

func syntaxDiagnostic(err error) diag.Diagnostic {
	message := strings.TrimSpace(err.Error())
	message = strings.TrimPrefix(message, "yaml: ")

	match := lineRE.FindStringSubmatch(message)
	if match == nil {
		return diag.New(diag.KindSyntax, "", message)
	}
	line, convErr := strconv.Atoi(match[1])
	if convErr != nil || line < 1 {
		return diag.New(diag.KindSyntax, "", message)
	}
	if idx := strings.Index(message, match[0]); idx >= 0 {
		if trimmed := strings.TrimSpace(message[idx+len(match[0]):]); trimmed != "" {
			message = trimmed
		}
	}
	// the decoder reports 1-based lines
	return diag.NewAtLine(diag.KindSyntax, "", message, line-1)
}
