// Package client holds the recipient record a delivery may reference.
// The optional Telegram chat id routes outbound notifications.
package client

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrNameIsRequired         = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired        = errs.NewValueIsRequiredError("phone")
	ErrClientIsNotConstructed = errors.New("Client must be created via NewClient constructor")
)

type Client struct {
	id             kernel.UUID
	name           string
	phone          string
	address        string
	telegramChatID string
	guard          guard.ConstructorGuard
}

func NewClient(id kernel.UUID, name, phone, address, telegramChatID string) (*Client, error) {
	c := &Client{
		address:        strings.TrimSpace(address),
		telegramChatID: strings.TrimSpace(telegramChatID),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(c.setID(id), c.setName(name), c.setPhone(phone)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) Validate() error {
	if c == nil {
		return ErrClientIsNotConstructed
	}
	return c.guard.Validate(ErrClientIsNotConstructed)
}

func (c *Client) ID() kernel.UUID        { return c.id }
func (c *Client) Name() string           { return c.name }
func (c *Client) Phone() string          { return c.phone }
func (c *Client) Address() string        { return c.address }
func (c *Client) TelegramChatID() string { return c.telegramChatID }

// CanBeNotified reports whether the client linked a messaging channel.
func (c *Client) CanBeNotified() bool {
	return c.telegramChatID != ""
}

func (c *Client) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Client) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Client) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ErrPhoneIsRequired
	}
	c.phone = phone
	return nil
}
