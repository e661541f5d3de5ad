package discord

import (
	"fmt"
	"slices"

	"github.com/bwmarrin/discordgo"
)

// MemberDirectory lists the usernames of guild members holding a role.
type MemberDirectory interface {
	RoleMembers(guildID, roleName string) ([]string, error)
}

// SessionMemberDirectory resolves role members through the Discord REST API.
// Listing members requires the privileged GUILD_MEMBERS intent.
type SessionMemberDirectory struct {
	Session *discordgo.Session
}

// RoleMembers pages through every guild member. An unknown role yields no members.
func (d *SessionMemberDirectory) RoleMembers(guildID, roleName string) ([]string, error) {
	roles, err := d.Session.GuildRoles(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	role := findRole(roles, roleName)
	if role == nil {
		return nil, nil
	}

	var names []string
	after := ""
	for {
		page, err := d.Session.GuildMembers(guildID, after, MemberPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list members: %w", err)
		}
		for _, m := range page {
			if m.User != nil && slices.Contains(m.Roles, role.ID) {
				names = append(names, m.User.Username)
			}
		}
		if len(page) < MemberPageSize || page[len(page)-1].User == nil {
			return names, nil
		}
		after = page[len(page)-1].User.ID
	}
}
