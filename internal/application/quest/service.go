package quest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/coupon-quest/coupon-quest/internal/application/claim"
	"github.com/coupon-quest/coupon-quest/internal/domain/coupon"
	"github.com/coupon-quest/coupon-quest/internal/domain/quiz"
)

// Messenger delivers text directly to a user. A delivery error during
// admission abandons the freshly created session.
type Messenger interface {
	SendDirect(ctx context.Context, userID, text string) error
}

// User-visible replies.
const (
	MsgAlreadyClaimed  = "You have already claimed a coupon code! Save some for others."
	MsgStatusCheckFail = "Database error checking your status."
	MsgAlreadyInQuiz   = "You are already in the quiz! Check your DMs."
	MsgStartOK         = "I've sent you a DM to start the tasks! Check your Direct Messages."
	MsgDMFailed        = "I couldn't DM you. Please enable DMs from server members in your privacy settings."
	MsgWrongAnswer     = "That is incorrect. Try again!"
	MsgPoolExhausted   = "🎉 **Congratulations!** You passed... but sadly we have run out of codes! Contact An Administrator."
	MsgClaimFailed     = "An error occurred while retrieving your code. Please contact an admin."
)

// Service runs the quest state machine: admission, answer evaluation, and
// the hand-off to the claim coordinator on the final correct answer.
type Service struct {
	coupons   coupon.Repository
	claims    *claim.Service
	sequence  quiz.Sequence
	tracker   *Tracker
	messenger Messenger
	logger    zerolog.Logger
}

// NewService creates a quest service.
func NewService(
	coupons coupon.Repository,
	claims *claim.Service,
	sequence quiz.Sequence,
	messenger Messenger,
	logger zerolog.Logger,
) *Service {
	return &Service{
		coupons:   coupons,
		claims:    claims,
		sequence:  sequence,
		tracker:   NewTracker(),
		messenger: messenger,
		logger:    logger.With().Str("service", "quest").Logger(),
	}
}

// ActiveSessions returns the number of quests in progress.
func (s *Service) ActiveSessions() int {
	return s.tracker.Len()
}

// HandleStart admits userID into the quest. The returned text is the reply
// to the start request itself; the first prompt is delivered separately via
// the Messenger, and a delivery failure abandons the session.
func (s *Service) HandleStart(ctx context.Context, userID string) string {
	existing, err := s.coupons.GetByClaimer(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to check claim status")
		return MsgStatusCheckFail
	}
	if existing != nil {
		return MsgAlreadyClaimed
	}

	if !s.tracker.Begin(userID) {
		return MsgAlreadyInQuiz
	}

	prompt, err := s.sequence.Prompt(0)
	if err != nil {
		s.tracker.End(userID)
		s.logger.Error().Err(err).Msg("quest sequence has no first step")
		return MsgClaimFailed
	}

	welcome := fmt.Sprintf("**Welcome to the Coupon Quest!**\n\n%s", prompt)
	if err := s.messenger.SendDirect(ctx, userID, welcome); err != nil {
		s.tracker.End(userID)
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("could not deliver first prompt")
		return MsgDMFailed
	}

	s.logger.Info().Str("user_id", userID).Msg("quest started")
	return MsgStartOK
}

// HandleMessage evaluates one direct message from userID against their
// current step. handled is false when the message is not part of a quest
// (not direct, or no active session) and the caller should ignore it.
func (s *Service) HandleMessage(ctx context.Context, userID, text string, isDirect bool) (reply string, handled bool) {
	if !isDirect {
		return "", false
	}
	step, ok := s.tracker.Step(userID)
	if !ok {
		return "", false
	}

	correct, err := s.sequence.Evaluate(step, text)
	if err != nil {
		// Out-of-range step index; the tracker invariants should make this
		// impossible.
		s.tracker.End(userID)
		s.logger.Error().Err(err).Str("user_id", userID).Int("step", step).
			Msg("session pointed at an invalid step")
		return MsgClaimFailed, true
	}
	if !correct {
		return MsgWrongAnswer, true
	}

	next := step + 1
	if next < s.sequence.Len() {
		if !s.tracker.AdvanceFrom(userID, step) {
			// A duplicate delivery of the same answer already advanced the
			// session; its reply carries the next prompt.
			return "", false
		}
		prompt, err := s.sequence.Prompt(next)
		if err != nil {
			s.tracker.End(userID)
			s.logger.Error().Err(err).Int("step", next).Msg("missing prompt for next step")
			return MsgClaimFailed, true
		}
		return fmt.Sprintf("Correct!\n\n%s", prompt), true
	}

	// Final step passed: the session is over regardless of how the claim
	// turns out. The conditional end lets exactly one of several racing
	// deliveries carry out the completion.
	if !s.tracker.EndFrom(userID, step) {
		return "", false
	}

	c, err := s.claims.Claim(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("claim failed")
		return MsgClaimFailed, true
	}
	if c == nil {
		return MsgPoolExhausted, true
	}
	return fmt.Sprintf("🎉 **Congratulations!** You passed all tasks.\n\nYour Coupon Code: `%s`", c.Code), true
}
