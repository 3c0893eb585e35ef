package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/erickyeagle/notification-roles-bot/internal/testutil"
	"github.com/erickyeagle/notification-roles-bot/pkg/api/discord"
	"github.com/erickyeagle/notification-roles-bot/pkg/errorx"
	"github.com/erickyeagle/notification-roles-bot/pkg/gateway"
	"github.com/stretchr/testify/require"
)

type capturedReply struct {
	channelID string
	replyToID string
	embed     discord.Embed
}

func newTestDispatcher(directory *testutil.Directory) (DispatcherDomain, *[]capturedReply) {
	replies := &[]capturedReply{}
	endpoint := &testutil.MockDiscordEndpoint{
		CreateMessageFunc: func(ctx context.Context, channelID, replyToID string, embed discord.Embed) error {
			*replies = append(*replies, capturedReply{channelID, replyToID, embed})
			return nil
		},
	}

	d := NewDispatcherDomain(botConfigs, testutil.BotID,
		NewSubscriptionDomain(directory), endpoint)
	return d, replies
}

func guildMessage(content string) gateway.MessageCreate {
	return gateway.MessageCreate{
		ID:        "msg-1",
		ChannelID: "channel-1",
		GuildID:   testutil.Guild1ID,
		Content:   content,
		Author:    gateway.User{ID: testutil.User1ID},
	}
}

func Test_dispatcherDomain_ServeMessage_IgnoresNonCommands(t *testing.T) {
	tests := []struct {
		name  string
		event gateway.MessageCreate
	}{
		{
			name:  "chatter",
			event: guildMessage("good morning everyone"),
		},
		{
			name:  "other prefix",
			event: guildMessage("?nr list"),
		},
		{
			name:  "other command group",
			event: guildMessage("!music play"),
		},
		{
			name: "own message",
			event: gateway.MessageCreate{
				ID:        "msg-1",
				ChannelID: "channel-1",
				GuildID:   testutil.Guild1ID,
				Content:   "!nr list",
				Author:    gateway.User{ID: testutil.BotID, Bot: true},
			},
		},
		{
			name: "another bot",
			event: gateway.MessageCreate{
				ID:        "msg-1",
				ChannelID: "channel-1",
				GuildID:   testutil.Guild1ID,
				Content:   "!nr list",
				Author:    gateway.User{ID: "bot-2", Bot: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, replies := newTestDispatcher(testutil.NewDirectory(testutil.Guild1()))
			d.ServeMessage(testutil.MockContext(), tt.event)
			require.Empty(t, *replies)
		})
	}
}

func Test_dispatcherDomain_ServeMessage_RepliesWithOutcome(t *testing.T) {
	tests := []struct {
		name            string
		event           gateway.MessageCreate
		wantDescription string
	}{
		{
			name: "command in direct message",
			event: gateway.MessageCreate{
				ID:        "msg-1",
				ChannelID: "dm-channel-1",
				Content:   "!nr list",
				Author:    gateway.User{ID: testutil.User1ID},
			},
			wantDescription: guildRequiredMessage,
		},
		{
			name: "malformed command in direct message",
			event: gateway.MessageCreate{
				ID:        "msg-1",
				ChannelID: "dm-channel-1",
				Content:   "!nr frobnicate",
				Author:    gateway.User{ID: testutil.User1ID},
			},
			wantDescription: guildRequiredMessage,
		},
		{
			name:            "unknown subcommand",
			event:           guildMessage("!nr frobnicate"),
			wantDescription: syntaxMessage,
		},
		{
			name:            "missing role argument",
			event:           guildMessage("!nr sub"),
			wantDescription: syntaxMessage,
		},
		{
			name:  "list",
			event: guildMessage("!nr list"),
			wantDescription: strings.Join([]string{
				testutil.RoleAlerts.Mention(),
				testutil.RoleNews.Mention(),
			}, ", "),
		},
		{
			name:  "add",
			event: guildMessage("!nr add Updates"),
			wantDescription: fmt.Sprintf(roleAddedToGuildMessage,
				"<@&created-role-1>"),
		},
		{
			name:  "subscribe",
			event: guildMessage("!nr sub Alerts"),
			wantDescription: fmt.Sprintf(roleAddedToMemberMessage,
				testutil.RoleAlerts.Mention()),
		},
		{
			name:  "subscribe to unknown role",
			event: guildMessage("!nr sub Nothing"),
			wantDescription: fmt.Sprintf(roleNotFoundInGuildMsg,
				"Nothing"),
		},
		{
			name:  "unsubscribe without holding",
			event: guildMessage("!nr unsub Alerts"),
			wantDescription: fmt.Sprintf(roleNotFoundInMemberMsg,
				testutil.RoleAlerts.Mention()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, replies := newTestDispatcher(testutil.NewDirectory(testutil.Guild1()))
			d.ServeMessage(testutil.MockContext(), tt.event)

			require.Len(t, *replies, 1)
			reply := (*replies)[0]
			require.Equal(t, tt.event.ChannelID, reply.channelID)
			require.Equal(t, tt.event.ID, reply.replyToID)
			require.Equal(t, tt.wantDescription, reply.embed.Description)
		})
	}
}

func Test_dispatcherDomain_ServeMessage_EmptyListIsSilent(t *testing.T) {
	guild := testutil.Guild1()
	guild.Me.Roles = nil
	guild.Members[0].Roles = nil

	d, replies := newTestDispatcher(testutil.NewDirectory(guild))
	d.ServeMessage(testutil.MockContext(), guildMessage("!nr list"))
	require.Empty(t, *replies)
}

func Test_dispatcherDomain_ServeMessage_SubscribeUnsubscribeRoundTrip(t *testing.T) {
	directory := testutil.NewDirectory(testutil.Guild1())
	d, replies := newTestDispatcher(directory)

	d.ServeMessage(testutil.MockContext(), guildMessage("!nr subscribe Alerts"))
	d.ServeMessage(testutil.MockContext(), guildMessage("!nr unsubscribe Alerts"))

	require.Len(t, *replies, 2)
	require.Equal(t,
		fmt.Sprintf(roleAddedToMemberMessage, testutil.RoleAlerts.Mention()),
		(*replies)[0].embed.Description)
	require.Equal(t,
		fmt.Sprintf(roleRemovedFromMemberMsg, testutil.RoleAlerts.Mention()),
		(*replies)[1].embed.Description)

	// Nobody but the bot held Alerts afterwards, so it was cleaned up.
	require.Contains(t, directory.DeletedRoles, testutil.RoleAlerts.ID)
}

func Test_OutcomeEmbed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want discord.Embed
	}{
		{
			name: "guild required",
			err:  errorx.New(errorx.GuildRequired, guildRequiredMessage),
			want: discord.Embed{Description: guildRequiredMessage},
		},
		{
			name: "bad syntax",
			err:  errorx.New(errorx.BadSyntax, syntaxMessage),
			want: discord.Embed{Description: syntaxMessage},
		},
		{
			name: "role not found",
			err:  errorx.New(errorx.RoleNotFound, roleNotFoundInGuildMsg, "Nothing"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleNotFoundInGuildMsg, "Nothing"),
			},
		},
		{
			name: "role already exists",
			err:  errorx.New(errorx.RoleAlreadyExists, roleFoundInGuildMessage, "<@&1001>"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleFoundInGuildMessage, "<@&1001>"),
			},
		},
		{
			name: "role creation failed",
			err:  errorx.New(errorx.RoleCreationFailed, roleAddToGuildMessage, "Updates"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleAddToGuildMessage, "Updates"),
			},
		},
		{
			name: "role not compatible",
			err:  errorx.New(errorx.RoleNotCompatible, roleNotCompatibleMessage, "<@&1003>"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleNotCompatibleMessage, "<@&1003>"),
			},
		},
		{
			name: "role already held",
			err:  errorx.New(errorx.RoleAlreadyHeld, roleFoundInMemberMessage, "<@&1002>"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleFoundInMemberMessage, "<@&1002>"),
			},
		},
		{
			name: "role not held",
			err:  errorx.New(errorx.RoleNotHeld, roleNotFoundInMemberMsg, "<@&1002>"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleNotFoundInMemberMsg, "<@&1002>"),
			},
		},
		{
			name: "internal",
			err:  errorx.New(errorx.Internal, roleAddToMemberMessage, "<@&1001>"),
			want: discord.Embed{
				Description: fmt.Sprintf(roleAddToMemberMessage, "<@&1001>"),
			},
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: discord.Embed{
				Fields: []discord.EmbedField{
					{Name: "connection reset", Value: unhandledMessage},
				},
			},
		},
		{
			name: "unmapped errorx code",
			err:  errorx.Unknown,
			want: discord.Embed{
				Fields: []discord.EmbedField{
					{Name: errorx.Unknown.Error(), Value: unhandledMessage},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, OutcomeEmbed(tt.err))
		})
	}
}

func Test_OutcomeEmbed_TruncatesLongFieldNames(t *testing.T) {
	err := errors.New(strings.Repeat("x", 1000))
	embed := OutcomeEmbed(err)
	require.Len(t, embed.Fields, 1)
	require.Len(t, embed.Fields[0].Name, embedFieldNameLimit)
	require.Equal(t, unhandledMessage, embed.Fields[0].Value)
}
