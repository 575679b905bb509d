package validator

import "regexp"

// PlaceholderApiKey is the value shipped in the sample .env file.
const PlaceholderApiKey = "your_openai_api_key_here"

var placeholderRegex = regexp.MustCompile(`^your_[a-z]+_api_key_here$`)

// IsUsableApiKey reports whether key can be sent upstream. Empty keys and the
// sample placeholders are not usable. The key is checked exactly as it will
// be sent.
func IsUsableApiKey(key string) bool {
	if key == "" || key == PlaceholderApiKey {
		return false
	}
	return !placeholderRegex.MatchString(key)
}
