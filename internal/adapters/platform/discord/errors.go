package discord

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/discord-autochat/internal/domain"
	"github.com/bwmarrin/discordgo"
)

// mapError tags a discordgo failure with the domain kind the scheduler
// branches on. Rejected or forbidden credentials are auth errors; everything
// else, transport failures included, is an API error.
func mapError(op string, err error) error {
	var rateLimited *discordgo.RateLimitError
	if errors.As(err, &rateLimited) {
		var wait time.Duration
		if rateLimited.RateLimit != nil && rateLimited.TooManyRequests != nil {
			wait = rateLimited.RetryAfter
		}
		return domain.RateLimitError(op, wait, err)
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		status := restErr.Response.StatusCode
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.AuthError(op, status, err)
		case http.StatusTooManyRequests:
			return domain.RateLimitError(op, retryAfterHeader(restErr.Response.Header), err)
		default:
			return domain.APIError(op, status, err)
		}
	}

	if errors.Is(err, discordgo.ErrUnauthorized) {
		return domain.AuthError(op, http.StatusUnauthorized, err)
	}

	return domain.APIError(op, 0, err)
}

func retryAfterHeader(header http.Header) time.Duration {
	seconds, err := strconv.ParseFloat(header.Get("Retry-After"), 64)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
