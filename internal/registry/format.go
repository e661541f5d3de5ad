package registry

import (
	"strings"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

// FormatStreamerList renders one "discord : twitch" line per pair.
// An empty list renders MsgNoStreamersFound.
func FormatStreamerList(pairs []domain.StreamerPair) string {
	if len(pairs) == 0 {
		return MsgNoStreamersFound
	}

	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		discord := p.DiscordUsername
		if discord == "" {
			discord = UnlinkedPlaceholder
		}
		lines = append(lines, discord+PairSeparator+p.TwitchUsername)
	}
	return strings.Join(lines, "\n")
}

// FormatNameList renders one name per line, or MsgNoStreamersFound.
func FormatNameList(names []string) string {
	if len(names) == 0 {
		return MsgNoStreamersFound
	}
	return strings.Join(names, "\n")
}

// IncompleteLogins returns the Twitch logins of records without a linked member.
func IncompleteLogins(records []domain.StreamerRecord) []string {
	logins := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.IsIncomplete() {
			logins = append(logins, rec.TwitchUsername)
		}
	}
	return logins
}

// UnlinkedMembers returns the members in roleMembers that have no registry pair.
func UnlinkedMembers(roleMembers []string, registered []domain.StreamerPair) []string {
	linked := make(map[string]struct{}, len(registered))
	for _, p := range registered {
		linked[p.DiscordUsername] = struct{}{}
	}

	missing := make([]string, 0)
	for _, m := range roleMembers {
		if _, ok := linked[m]; !ok {
			missing = append(missing, m)
		}
	}
	return missing
}
