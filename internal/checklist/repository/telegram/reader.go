package telegram

import (
	"context"
	"fmt"

	"checkbot/internal/checklist"
	"checkbot/internal/location"
	pkgTelegram "checkbot/pkg/telegram"
)

// FetchCurrentText forwards the canonical copy into scratchChatID, reads it
// and deletes the forwarded copy on every path.
func (r *implRepository) FetchCurrentText(ctx context.Context, scratchChatID int64, loc location.Location) (string, error) {
	msg, err := r.bot.ForwardMessage(ctx, scratchChatID, loc.SourceChatID, loc.SourceMessageID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", checklist.ErrReadFailure, err)
	}
	defer func() {
		// cleanup must outlive a cancelled request
		if err := r.bot.DeleteMessage(context.WithoutCancel(ctx), scratchChatID, msg.MessageID); err != nil {
			r.l.Warnf(ctx, "checklist.repository.FetchCurrentText: failed to delete scratch copy %d in %d: %v",
				msg.MessageID, scratchChatID, err)
		}
	}()

	if !r.trustedOrigin(msg.ForwardOrigin, loc.SourceChatID) {
		r.l.Warnf(ctx, "checklist.repository.FetchCurrentText: untrusted origin for %d/%d",
			loc.SourceChatID, loc.SourceMessageID)
		return "", checklist.ErrReadFailure
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return "", checklist.ErrReadFailure
	}
	return text, nil
}

// trustedOrigin accepts messages the bot sent and posts of the source
// channel itself. The signature does not cover the message id, so any
// other message in the chat could be substituted.
func (r *implRepository) trustedOrigin(origin *pkgTelegram.MessageOrigin, sourceChatID int64) bool {
	if origin == nil {
		return false
	}
	switch origin.Type {
	case pkgTelegram.OriginUser:
		return origin.SenderUser != nil && origin.SenderUser.ID == r.botID
	case pkgTelegram.OriginChannel:
		return origin.Chat != nil && origin.Chat.ID == sourceChatID
	}
	return false
}
