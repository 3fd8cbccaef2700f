package observability

import (
	"os"
	"os/user"

	"github.com/facebookincubator/go-belt/pkg/field"
)

// DefaultFields returns the fields attached to every log entry of the process:
// the process identity and the CI job (if running in CI).
func DefaultFields() field.Fields {
	var result field.Fields

	result = append(result, field.Field{
		Key:   "pid",
		Value: FieldPID(os.Getpid()),
	})
	result = append(result, field.Field{
		Key:   "uid",
		Value: FieldUID(os.Getuid()),
	})
	if curUser, _ := user.Current(); curUser != nil {
		result = append(result, field.Field{
			Key:   "username",
			Value: FieldUsername(curUser.Username),
		})
	}
	if hostname, err := os.Hostname(); err == nil {
		result = append(result, field.Field{
			Key:   "hostname",
			Value: FieldHostname(hostname),
		})
	}
	for keySrc, keyDst := range map[string]string{
		"GITHUB_REPOSITORY":  "ciRepository",
		"GITHUB_RUN_ID":      "ciRunID",
		"GITHUB_REF_NAME":    "ciRef",
		"CI_PROJECT_PATH":    "ciRepository",
		"CI_PIPELINE_ID":     "ciRunID",
		"CI_COMMIT_REF_NAME": "ciRef",
	} {
		if s := os.Getenv(keySrc); s != "" {
			result = append(result, field.Field{
				Key:   keyDst,
				Value: s,
			})
		}
	}

	return result
}
