package channel

import (
	"errors"
	"strings"
)

var ErrConfigMalformed = errors.New("malformed channel config")

const configLineCount = 4

// ParseConfig parses the admin setup message: four newline-delimited lines of
// the form "key: value". Lines are positional (channel, image, name, invite
// link), the label text is ignored and the value is everything after the first
// colon, trimmed. Any line without a colon rejects the whole record.
func ParseConfig(text string) (config Config, err error) {
	lines := strings.Split(text, "\n")
	if len(lines) < configLineCount {
		return config, ErrConfigMalformed
	}

	values := make([]string, configLineCount)
	for ix := 0; ix < configLineCount; ix++ {
		value, ok := parseLine(lines[ix])
		if !ok {
			return config, ErrConfigMalformed
		}
		values[ix] = value
	}

	config = Config{
		Channel:    values[0],
		Image:      values[1],
		Name:       values[2],
		InviteLink: values[3],
	}
	if err := config.Validate(); err != nil {
		return Config{}, ErrConfigMalformed
	}
	return config, nil
}

func parseLine(line string) (value string, ok bool) {
	parts := strings.Split(strings.TrimSpace(line), ":")
	if len(parts) < 2 {
		return "", false
	}
	return strings.TrimSpace(strings.Join(parts[1:], ":")), true
}
