package discord

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/pkg/api"
	"github.com/stretchr/testify/require"
)

func Test_Endpoint_GiveRole_TooManyRequest(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	resetAt := time.Now().Add(time.Second)
	endpoint.apiGenerator = &api.MockAPIGenerator{
		MockClient: api.MockAPIClient{
			PUTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
				return &api.Response{
					Code:   http.StatusTooManyRequests,
					Header: http.Header{"X-Ratelimit-Reset": []string{strconv.FormatInt(resetAt.Unix(), 10)}},
				}, nil
			},
		},
	}

	// Call API with a response of TooManyRequest.
	err := endpoint.GiveRole(context.Background(), "guild-1", "user-1", "role-1")
	gotResetAt, ok := IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt.Unix(), gotResetAt.Unix())

	// Check the resource with identifier, ensure that it is limited.
	err = endpoint.checkLimitingResource(giveRoleResource, "guild-1")
	gotResetAt, ok = IsRateLimit(err)
	require.True(t, ok)
	require.Equal(t, resetAt.Unix(), gotResetAt.Unix())

	// Check another identifier, ensure that it is NOT limited.
	err = endpoint.checkLimitingResource(giveRoleResource, "guild-2")
	require.NoError(t, err)

	// Sleep until the limiting of resource expired. Check again.
	time.Sleep(time.Second)
	err = endpoint.checkLimitingResource(giveRoleResource, "guild-1")
	require.NoError(t, err)
}

func Test_Endpoint_CreateRole(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	var sentBody api.Body
	generator := &api.MockAPIGenerator{}
	generator.MockClient = api.MockAPIClient{
		BodyFunc: func(body api.Body) api.Client {
			sentBody = body
			return &generator.MockClient
		},
		POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
			return &api.Response{
				Code: http.StatusOK,
				Body: api.JSON{
					"id":          "1006",
					"name":        "Updates",
					"mentionable": true,
					"permissions": "0",
					"position":    6,
				},
			}, nil
		},
	}
	endpoint.apiGenerator = generator

	role, err := endpoint.CreateRole(context.Background(), "guild-1", "Updates")
	require.NoError(t, err)
	require.Equal(t, Role{
		ID:          "1006",
		Name:        "Updates",
		Mentionable: true,
		Permissions: 0,
		Position:    6,
	}, role)

	// New roles must be requested mentionable with an empty permission
	// bitfield.
	require.Equal(t, api.JSON{
		"name":        "Updates",
		"mentionable": true,
		"permissions": "0",
	}, sentBody)
}

func Test_Endpoint_ListMembers_Paginates(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	fullPage := api.Array{}
	for i := 0; i < membersPageLimit; i++ {
		fullPage = append(fullPage, api.JSON{
			"user":  map[string]any{"id": strconv.Itoa(i + 1)},
			"roles": []any{},
		})
	}
	lastPage := api.Array{
		{
			"user":  map[string]any{"id": "last", "bot": true},
			"roles": []any{"1001"},
		},
	}

	var queries []api.Parameter
	calls := 0
	generator := &api.MockAPIGenerator{}
	generator.MockClient = api.MockAPIClient{
		QueryFunc: func(query api.Parameter) api.Client {
			queries = append(queries, query)
			return &generator.MockClient
		},
		GETFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
			calls++
			if calls == 1 {
				return &api.Response{Code: http.StatusOK, Body: fullPage}, nil
			}

			return &api.Response{Code: http.StatusOK, Body: lastPage}, nil
		},
	}
	endpoint.apiGenerator = generator

	members, err := endpoint.ListMembers(context.Background(), "guild-1")
	require.NoError(t, err)
	require.Len(t, members, membersPageLimit+1)
	require.Equal(t, Member{ID: "last", Bot: true, Roles: []string{"1001"}},
		members[len(members)-1])

	// The second page is requested after the last member of the first one.
	require.Len(t, queries, 2)
	require.Equal(t, "0", queries[0]["after"])
	require.Equal(t, strconv.Itoa(membersPageLimit), queries[1]["after"])
}

func Test_Endpoint_CreateMessage(t *testing.T) {
	endpoint := New(config.DiscordConfigs{})

	var sentBody api.Body
	generator := &api.MockAPIGenerator{}
	generator.MockClient = api.MockAPIClient{
		BodyFunc: func(body api.Body) api.Client {
			sentBody = body
			return &generator.MockClient
		},
		POSTFunc: func(ctx context.Context, opts ...api.Opt) (*api.Response, error) {
			return &api.Response{Code: http.StatusOK}, nil
		},
	}
	endpoint.apiGenerator = generator

	err := endpoint.CreateMessage(context.Background(), "channel-1", "msg-1",
		Embed{Description: "The role <@&1001> has been added to you!"})
	require.NoError(t, err)
	require.Equal(t, api.JSON{
		"embeds": []api.JSON{
			{"description": "The role <@&1001> has been added to you!"},
		},
		"message_reference": api.JSON{"message_id": "msg-1"},
	}, sentBody)
}

func Test_parseRole(t *testing.T) {
	role, err := parseRole(api.JSON{
		"id":          "1003",
		"name":        "Admin",
		"mentionable": false,
		"permissions": "8",
		"position":    3,
	})
	require.NoError(t, err)
	require.Equal(t, Role{
		ID:          "1003",
		Name:        "Admin",
		Mentionable: false,
		Permissions: 8,
		Position:    3,
	}, role)

	_, err = parseRole(api.JSON{
		"id":          "1003",
		"name":        "Admin",
		"mentionable": false,
		"permissions": "not-a-number",
		"position":    3,
	})
	require.Error(t, err)
}

func Test_parseMember(t *testing.T) {
	member, err := parseMember(api.JSON{
		"user":  map[string]any{"id": "user-1"},
		"roles": []any{"1001", "1002"},
	})
	require.NoError(t, err)
	require.Equal(t, Member{ID: "user-1", Roles: []string{"1001", "1002"}}, member)

	// The bot flag is omitted for regular users and present for bots.
	member, err = parseMember(api.JSON{
		"user":  map[string]any{"id": "bot-1", "bot": true},
		"roles": []any{},
	})
	require.NoError(t, err)
	require.True(t, member.Bot)
}
