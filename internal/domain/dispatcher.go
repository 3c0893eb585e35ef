package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erickyeagle/notification-roles-bot/config"
	"github.com/erickyeagle/notification-roles-bot/internal/model"
	"github.com/erickyeagle/notification-roles-bot/pkg/api/discord"
	"github.com/erickyeagle/notification-roles-bot/pkg/errorx"
	"github.com/erickyeagle/notification-roles-bot/pkg/gateway"
	"github.com/erickyeagle/notification-roles-bot/pkg/xcontext"
	"github.com/google/uuid"
	mathUtil "github.com/pkg/math"
)

// Discord rejects embed field names longer than this.
const embedFieldNameLimit = 256

type DispatcherDomain interface {
	ServeMessage(ctx context.Context, event gateway.MessageCreate)
}

type dispatcherDomain struct {
	cfg          config.BotConfigs
	botID        string
	subscription SubscriptionDomain
	endpoint     discord.IEndpoint
}

func NewDispatcherDomain(
	cfg config.BotConfigs,
	botID string,
	subscription SubscriptionDomain,
	endpoint discord.IEndpoint,
) DispatcherDomain {
	return &dispatcherDomain{
		cfg:          cfg,
		botID:        botID,
		subscription: subscription,
		endpoint:     endpoint,
	}
}

// ServeMessage handles one inbound message end to end: parse, run the
// subscription action, and reply. Every failure is converted to exactly one
// response; nothing escapes to the caller.
func (d *dispatcherDomain) ServeMessage(ctx context.Context, event gateway.MessageCreate) {
	if event.Author.ID == d.botID || event.Author.Bot {
		return
	}

	intent, err := ParseCommand(d.cfg, event.Content)
	if errors.Is(err, ErrNotCommand) {
		return
	}

	ctx = xcontext.WithRequestID(ctx, uuid.NewString())

	if event.GuildID == "" {
		d.respond(ctx, event, errorx.New(errorx.GuildRequired, guildRequiredMessage))
		return
	}

	if err != nil {
		d.respond(ctx, event, err)
		return
	}

	intent.GuildID = event.GuildID
	intent.ChannelID = event.ChannelID
	intent.MemberID = event.Author.ID
	intent.MessageID = event.ID

	description, err := d.invoke(ctx, intent)
	if err != nil {
		d.respond(ctx, event, err)
		return
	}

	// An empty description means the designed outcome is silence.
	if description == "" {
		return
	}

	d.reply(ctx, event, discord.Embed{Description: description})
}

func (d *dispatcherDomain) invoke(ctx context.Context, intent model.CommandIntent) (string, error) {
	switch intent.Action {
	case model.ActionAddRole:
		resp, err := d.subscription.AddRole(ctx, &model.AddRoleRequest{
			GuildID:   intent.GuildID,
			RoleToken: intent.RoleToken,
		})
		if err != nil {
			return "", err
		}

		return fmt.Sprintf(roleAddedToGuildMessage, resp.Role.Mention()), nil

	case model.ActionListRoles:
		resp, err := d.subscription.ListRoles(ctx, &model.ListRolesRequest{
			GuildID: intent.GuildID,
		})
		if err != nil {
			return "", err
		}

		if len(resp.Roles) == 0 {
			return "", nil
		}

		mentions := []string{}
		for _, role := range resp.Roles {
			mentions = append(mentions, role.Mention())
		}

		return strings.Join(mentions, ", "), nil

	case model.ActionSubscribe:
		resp, err := d.subscription.Subscribe(ctx, &model.SubscribeRequest{
			GuildID:   intent.GuildID,
			MemberID:  intent.MemberID,
			RoleToken: intent.RoleToken,
		})
		if err != nil {
			return "", err
		}

		return fmt.Sprintf(roleAddedToMemberMessage, resp.Role.Mention()), nil

	case model.ActionUnsubscribe:
		resp, err := d.subscription.Unsubscribe(ctx, &model.UnsubscribeRequest{
			GuildID:   intent.GuildID,
			MemberID:  intent.MemberID,
			RoleToken: intent.RoleToken,
		})
		if err != nil {
			return "", err
		}

		return fmt.Sprintf(roleRemovedFromMemberMsg, resp.Role.Mention()), nil
	}

	return "", errorx.Unknown
}

// OutcomeEmbed maps any failure to its single user-facing response. The
// errorx codes form a closed set; anything outside it gets the unhandled
// response carrying the failure's description.
func OutcomeEmbed(err error) discord.Embed {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		return unhandledEmbed(err)
	}

	switch errx.Code {
	case errorx.GuildRequired,
		errorx.BadSyntax,
		errorx.RoleNotFound,
		errorx.RoleAlreadyExists,
		errorx.RoleCreationFailed,
		errorx.RoleNotCompatible,
		errorx.RoleAlreadyHeld,
		errorx.RoleNotHeld,
		errorx.Internal:
		return discord.Embed{Description: errx.Message}
	}

	return unhandledEmbed(err)
}

func unhandledEmbed(err error) discord.Embed {
	name := err.Error()
	name = name[:mathUtil.MinInt(len(name), embedFieldNameLimit)]
	return discord.Embed{
		Fields: []discord.EmbedField{{Name: name, Value: unhandledMessage}},
	}
}

func (d *dispatcherDomain) respond(ctx context.Context, event gateway.MessageCreate, err error) {
	var errx errorx.Error
	if errors.As(err, &errx) {
		xcontext.Logger(ctx).Warnf("Command failed | %s | %d", xcontext.RequestID(ctx), errx.Code)
	} else {
		xcontext.Logger(ctx).Errorf("Command failed | %s | %v", xcontext.RequestID(ctx), err)
	}

	d.reply(ctx, event, OutcomeEmbed(err))
}

func (d *dispatcherDomain) reply(ctx context.Context, event gateway.MessageCreate, embed discord.Embed) {
	if err := d.endpoint.CreateMessage(ctx, event.ChannelID, event.ID, embed); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reply to message %s: %v", event.ID, err)
	}
}
