package templates

// minimalTemplate is the built-in fallback, already in the on-disk format.
const minimalTemplate = `{
  "defaultCompanyId": "",
  "multiCompany": false,
  "useIPPermit": false,
  "checkPushToken": true,
  "logoutAfter": 14
}`

// Minimal returns the built-in template.
func Minimal() []byte {
	return []byte(minimalTemplate)
}
