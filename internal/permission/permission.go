package permission

import (
	"context"

	"checkbot/internal/location"
	"checkbot/pkg/telegram"
)

// Chats is the part of the Bot API the evaluator needs.
type Chats interface {
	GetChatMember(ctx context.Context, chatID, userID int64) (*telegram.ChatMember, error)
	GetChat(ctx context.Context, chatID int64) (*telegram.Chat, error)
}

var allowedStatuses = map[string]bool{
	telegram.MemberStatusCreator:       true,
	telegram.MemberStatusAdministrator: true,
	telegram.MemberStatusMember:        true,
}

// Authorize decides whether userID may edit the checklist at loc.
// The location must already be verified.
func Authorize(ctx context.Context, chats Chats, userID int64, loc location.Location) error {
	target := loc.TargetChatID()

	switch {
	case target < 0 && target != userID:
		status := memberStatus(ctx, chats, target, userID)
		if !allowedStatuses[status] {
			return ErrNotEnoughRights
		}
		// plain members may edit in groups but not in channels
		if status == telegram.MemberStatusMember && chatType(ctx, chats, target) == telegram.ChatTypeChannel {
			return ErrNotAdministrator
		}
		return nil

	case target != userID:
		// inline copies are editable by anyone who can see them
		if !loc.HasInline() {
			return ErrNotEnoughRights
		}
		if loc.IsPersonal {
			return ErrPersonalChecklist
		}
		return nil
	}
	return nil
}

func memberStatus(ctx context.Context, chats Chats, chatID, userID int64) string {
	member, err := chats.GetChatMember(ctx, chatID, userID)
	if err != nil || member == nil {
		return telegram.MemberStatusRestricted
	}
	return member.Status
}

// chatType fails closed: an unknown chat is treated as a channel.
func chatType(ctx context.Context, chats Chats, chatID int64) string {
	chat, err := chats.GetChat(ctx, chatID)
	if err != nil || chat == nil {
		return telegram.ChatTypeChannel
	}
	return chat.Type
}
