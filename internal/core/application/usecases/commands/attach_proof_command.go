package commands

import (
	"errors"

	"routeplan/internal/core/domain/model/route"
	"routeplan/internal/pkg/guard"
)

var (
	ErrAttachProofCommandIsNotConstructed = errors.New(
		"AttachProofCommand must be created via NewAttachProofCommand constructor",
	)
	ErrProofIsRequired = errors.New("a photo or a note is required")
)

// AttachProofCommand stages delivery proof on the active stop of a route.
// A photo, a note, or both may be supplied; a repeated call overwrites the
// previously staged artifact of the same kind and leaves the other intact.
type AttachProofCommand struct { //nolint:recvcheck //using for validation
	token       route.AccessToken
	sequence    int
	photo       []byte
	contentType string
	note        *string

	guard guard.ConstructorGuard
}

// NewAttachProofCommand creates a command to stage proof on a stop.
// At least one of photo or note must be present.
func NewAttachProofCommand(
	token route.AccessToken,
	sequence int,
	photo []byte,
	contentType string,
	note *string,
) (AttachProofCommand, error) {
	cmd := AttachProofCommand{
		photo:       photo,
		contentType: contentType,
		note:        note,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setToken(token),
		cmd.setSequence(sequence),
		cmd.validateProof(),
	); err != nil {
		return AttachProofCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachProofCommand) Validate() error {
	return c.guard.Validate(ErrAttachProofCommandIsNotConstructed)
}

// Token returns the route access token.
func (c AttachProofCommand) Token() route.AccessToken {
	return c.token
}

// Sequence returns the 1-based position of the stop on the route.
func (c AttachProofCommand) Sequence() int {
	return c.sequence
}

// Photo returns the raw photo bytes; empty when only a note is staged.
func (c AttachProofCommand) Photo() []byte {
	return c.photo
}

// ContentType returns the MIME type of the photo.
func (c AttachProofCommand) ContentType() string {
	return c.contentType
}

// Note returns the free-text note; nil when only a photo is staged.
func (c AttachProofCommand) Note() *string {
	return c.note
}

func (c *AttachProofCommand) setToken(token route.AccessToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	c.token = token
	return nil
}

func (c *AttachProofCommand) setSequence(sequence int) error {
	if sequence < 1 {
		return ErrSequenceIsInvalid
	}

	c.sequence = sequence
	return nil
}

func (c *AttachProofCommand) validateProof() error {
	if len(c.photo) == 0 && c.note == nil {
		return ErrProofIsRequired
	}

	return nil
}
