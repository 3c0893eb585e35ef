package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/pkg/api"
	"github.com/puzpuzpuz/xsync"
)

const apiURL = "https://discord.com/api/v10"
const userAgent = "DiscordBot (https://github.com/erickyeagle/notification-roles-bot, 1.0)"

const membersPageLimit = 1000

const (
	createRoleResource    = "create_role"
	deleteRoleResource    = "delete_role"
	giveRoleResource      = "give_role"
	takeRoleResource      = "take_role"
	createMessageResource = "create_message"
	listMembersResource   = "list_members"
)

type Endpoint struct {
	BotToken string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		apiGenerator:      api.NewGenerator(apiURL),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

func (e *Endpoint) GetMe(ctx context.Context) (User, error) {
	resp, err := e.apiGenerator.New("/users/@me").
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return User{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return User{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return User{}, err
	}

	username, err := body.GetString("username")
	if err != nil {
		return User{}, err
	}

	return User{ID: id, Username: username, Bot: true}, nil
}

func (e *Endpoint) GetGuild(ctx context.Context, guildID string) (Guild, error) {
	resp, err := e.apiGenerator.New("/guilds/%s", guildID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Guild{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Guild{}, errors.New("invalid response")
	}

	id, err := body.GetString("id")
	if err != nil {
		return Guild{}, err
	}

	name, err := body.GetString("name")
	if err != nil {
		return Guild{}, err
	}

	ownerID, err := body.GetString("owner_id")
	if err != nil {
		return Guild{}, err
	}

	return Guild{ID: id, Name: name, OwnerID: ownerID}, nil
}

func (e *Endpoint) GetRoles(ctx context.Context, guildID string) ([]Role, error) {
	resp, err := e.apiGenerator.New("/guilds/%s/roles", guildID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return nil, err
	}

	array, ok := resp.Body.(api.Array)
	if !ok {
		return nil, errors.New("invalid response")
	}

	var roles []Role
	for _, obj := range array {
		role, err := parseRole(obj)
		if err != nil {
			return nil, err
		}

		roles = append(roles, role)
	}

	return roles, nil
}

func (e *Endpoint) GetMember(ctx context.Context, guildID, userID string) (Member, error) {
	resp, err := e.apiGenerator.New("/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Member{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Member{}, errors.New("invalid response")
	}

	// If response has the field of code, an error is returned.
	if _, err := body.GetInt("code"); err == nil {
		return Member{}, fmt.Errorf("not found member %s in guild %s", userID, guildID)
	}

	return parseMember(body)
}

func (e *Endpoint) ListMembers(ctx context.Context, guildID string) ([]Member, error) {
	if err := e.checkLimitingResource(listMembersResource, guildID); err != nil {
		return nil, err
	}

	var members []Member
	after := "0"
	for {
		resp, err := e.apiGenerator.New("/guilds/%s/members", guildID).
			Header("User-Agent", userAgent).
			Query(api.Parameter{"limit": strconv.Itoa(membersPageLimit), "after": after}).
			GET(ctx, api.OAuth2("Bot", e.BotToken))
		if err != nil {
			return nil, err
		}

		if err := e.checkTooManyRequest(resp, listMembersResource, guildID); err != nil {
			return nil, err
		}

		array, ok := resp.Body.(api.Array)
		if !ok {
			return nil, errors.New("invalid response")
		}

		for _, obj := range array {
			member, err := parseMember(obj)
			if err != nil {
				return nil, err
			}

			members = append(members, member)
			after = member.ID
		}

		if len(array) < membersPageLimit {
			return members, nil
		}
	}
}

func (e *Endpoint) CreateRole(ctx context.Context, guildID, name string) (Role, error) {
	if err := e.checkLimitingResource(createRoleResource, guildID); err != nil {
		return Role{}, err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/roles", guildID).
		Header("User-Agent", userAgent).
		Body(api.JSON{"name": name, "mentionable": true, "permissions": "0"}).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Role{}, err
	}

	if err := e.checkTooManyRequest(resp, createRoleResource, guildID); err != nil {
		return Role{}, err
	}

	if resp.Code != http.StatusOK && resp.Code != http.StatusCreated {
		return Role{}, fmt.Errorf("cannot create role, got status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Role{}, errors.New("invalid response")
	}

	return parseRole(body)
}

func (e *Endpoint) DeleteRole(ctx context.Context, guildID, roleID string) error {
	if err := e.checkLimitingResource(deleteRoleResource, guildID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/roles/%s", guildID, roleID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, deleteRoleResource, guildID); err != nil {
		return err
	}

	if resp.Code != http.StatusNoContent {
		return fmt.Errorf("cannot delete role, got status %d", resp.Code)
	}

	return nil
}

func (e *Endpoint) GiveRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := e.checkLimitingResource(giveRoleResource, guildID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID).
		Header("User-Agent", userAgent).
		PUT(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, giveRoleResource, guildID); err != nil {
		return err
	}

	if resp.Code != http.StatusNoContent {
		return fmt.Errorf("cannot give role, got status %d", resp.Code)
	}

	return nil
}

func (e *Endpoint) TakeRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := e.checkLimitingResource(takeRoleResource, guildID); err != nil {
		return err
	}

	resp, err := e.apiGenerator.New("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID).
		Header("User-Agent", userAgent).
		DELETE(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, takeRoleResource, guildID); err != nil {
		return err
	}

	if resp.Code != http.StatusNoContent {
		return fmt.Errorf("cannot take role, got status %d", resp.Code)
	}

	return nil
}

func (e *Endpoint) CreateMessage(ctx context.Context, channelID, replyToID string, embed Embed) error {
	if err := e.checkLimitingResource(createMessageResource, channelID); err != nil {
		return err
	}

	embedBody := api.JSON{}
	if embed.Description != "" {
		embedBody["description"] = embed.Description
	}

	if len(embed.Fields) > 0 {
		fields := []api.JSON{}
		for _, field := range embed.Fields {
			fields = append(fields, api.JSON{"name": field.Name, "value": field.Value})
		}
		embedBody["fields"] = fields
	}

	body := api.JSON{"embeds": []api.JSON{embedBody}}
	if replyToID != "" {
		body["message_reference"] = api.JSON{"message_id": replyToID}
	}

	resp, err := e.apiGenerator.New("/channels/%s/messages", channelID).
		Header("User-Agent", userAgent).
		Body(body).
		POST(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return err
	}

	if err := e.checkTooManyRequest(resp, createMessageResource, channelID); err != nil {
		return err
	}

	if resp.Code != http.StatusOK {
		return fmt.Errorf("cannot create message, got status %d", resp.Code)
	}

	return nil
}

func parseRole(obj api.JSON) (Role, error) {
	id, err := obj.GetString("id")
	if err != nil {
		return Role{}, err
	}

	name, err := obj.GetString("name")
	if err != nil {
		return Role{}, err
	}

	mentionable, err := obj.GetBool("mentionable")
	if err != nil {
		return Role{}, err
	}

	// Discord serializes the permission bitfield as a string.
	permissionsStr, err := obj.GetString("permissions")
	if err != nil {
		return Role{}, err
	}

	permissions, err := strconv.ParseUint(permissionsStr, 10, 64)
	if err != nil {
		return Role{}, err
	}

	position, err := obj.GetInt("position")
	if err != nil {
		return Role{}, err
	}

	return Role{
		ID:          id,
		Name:        name,
		Mentionable: mentionable,
		Permissions: permissions,
		Position:    position,
	}, nil
}

func parseMember(obj api.JSON) (Member, error) {
	id, err := obj.GetString("user.id")
	if err != nil {
		return Member{}, err
	}

	// The bot field is omitted for regular users.
	isBot, _ := obj.GetBool("user.bot")

	roles, err := obj.GetStringArray("roles")
	if err != nil {
		return Member{}, err
	}

	return Member{ID: id, Bot: isBot, Roles: roles}, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}
