package domain

// User-facing response texts, keyed by outcome.
const (
	guildRequiredMessage     = "Uh-oh...this command is only valid in a guild context!"
	roleAddToGuildMessage    = `Uh-oh...the role "%s" could not be added to your guild!`
	roleAddToMemberMessage   = "Uh-oh...the role %s could not be added to you!"
	roleAddedToGuildMessage  = "The role %s has been added to your guild!"
	roleAddedToMemberMessage = "The role %s has been added to you!"
	roleFoundInGuildMessage  = "Uh-oh...your guild already has the role %s!"
	roleFoundInMemberMessage = "Uh-oh...you already have the role %s!"
	roleNotCompatibleMessage = "Uh-oh...the role %s is not a notification role!"
	roleNotFoundInGuildMsg   = `Uh-oh...your guild does not have the role "%s"!`
	roleNotFoundInMemberMsg  = "Uh-oh...you don't have the role %s!"
	roleRemovedFromMemberMsg = "The role %s has been removed from you!"
	syntaxMessage            = "Syntax: !nr {list | {add | sub[scribe] | unsub[scribe]} <role>}"
	unhandledMessage         = "It looks like you found a bug in Notification Roles Bot. If you " +
		"would like to help us out, please file an issue on [GitHub]" +
		"(https://github.com/erickyeagle/notification-roles-bot/issues). " +
		"Thank you!"
)
