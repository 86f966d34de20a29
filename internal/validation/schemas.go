package validation

import "fmt"

type Entity string

const (
	EntityWorker        Entity = "worker"
	EntityClientRequest Entity = "client_request"
	EntityContact       Entity = "contact_message"
	EntityFranchise     Entity = "franchise_application"
)

// requiredFields lists, per entity, the input keys that must be present and
// non-blank. Order is the order reported back to the client.
var requiredFields = map[Entity][]string{
	EntityWorker:        {"fullName", "mobileNumber", "skillType"},
	EntityClientRequest: {"clientName", "clientPhone", "serviceType"},
	EntityContact:       {"name", "email", "message"},
	EntityFranchise:     {"fullName", "mobileNumber"},
}

// A present value is either a string with at least one non-space rune or a
// number. RE2's \s is ASCII only, so Unicode separators, NEL and VT are listed.
const presentValue = `{"anyOf": [{"type": "string", "pattern": "[^\\s\\p{Z}\\x{85}\\x{0B}]"}, {"type": "number"}]}`

func schemaFor(entity Entity) string {
	fields := requiredFields[entity]
	required := ""
	properties := ""
	for i, f := range fields {
		if i > 0 {
			required += ", "
			properties += ", "
		}
		required += fmt.Sprintf("%q", f)
		properties += fmt.Sprintf("%q: %s", f, presentValue)
	}
	return fmt.Sprintf(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": [%s],
		"properties": {%s}
	}`, required, properties)
}
