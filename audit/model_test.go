package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	entry := Entry{UserID: "u1", Action: ActionCreate, Resource: "user"}
	assert.NoError(t, entry.Validate())

	assert.Error(t, (&Entry{Action: ActionCreate, Resource: "user"}).Validate())
	assert.Error(t, (&Entry{UserID: "u1", Resource: "user"}).Validate())
	assert.Error(t, (&Entry{UserID: "u1", Action: ActionCreate}).Validate())
}

func TestSanitizeRedactsSensitiveKeys(t *testing.T) {
	entry := Entry{
		UserID:   "u1",
		Action:   ActionUpdate,
		Resource: "user",
		Details: map[string]interface{}{
			"email":    "dev@example.com",
			"password": "hunter2",
			"token":    "abc",
			"secret":   "xyz",
			"apiKey":   "key",
		},
	}
	entry.Sanitize()

	assert.Equal(t, "dev@example.com", entry.Details["email"])
	for _, key := range []string{"password", "token", "secret", "apiKey"} {
		assert.Equal(t, RedactedValue, entry.Details[key], "key %s", key)
	}
}

func TestSanitizeRecursesIntoNestedMaps(t *testing.T) {
	entry := Entry{
		Details: map[string]interface{}{
			"profile": map[string]interface{}{
				"name":     "dev",
				"password": "hunter2",
				"inner": map[string]interface{}{
					"apiKey": "key",
				},
			},
		},
	}
	entry.Sanitize()

	profile := entry.Details["profile"].(map[string]interface{})
	assert.Equal(t, "dev", profile["name"])
	assert.Equal(t, RedactedValue, profile["password"])
	inner := profile["inner"].(map[string]interface{})
	assert.Equal(t, RedactedValue, inner["apiKey"])
}

func TestSanitizeDoesNotMutateCallerMap(t *testing.T) {
	original := map[string]interface{}{"password": "hunter2"}
	entry := Entry{Details: original}
	entry.Sanitize()

	assert.Equal(t, "hunter2", original["password"])
	assert.Equal(t, RedactedValue, entry.Details["password"])
}

func TestSanitizeNilDetails(t *testing.T) {
	entry := Entry{}
	entry.Sanitize()
	assert.Nil(t, entry.Details)
}
