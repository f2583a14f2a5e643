package gcal

import (
	"fmt"
)

// CalendarInfo describes one calendar the user has access to.
type CalendarInfo struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Primary  bool   `json:"primary"`
	Selected bool   `json:"selected"`
}

// ListCalendars returns all calendars the user has access to
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	if c.service == nil {
		return nil, fmt.Errorf("not authenticated")
	}

	list, err := c.service.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	var calendars []CalendarInfo
	for _, item := range list.Items {
		calendars = append(calendars, CalendarInfo{
			ID:       item.Id,
			Summary:  item.Summary,
			Primary:  item.Primary,
			Selected: item.Selected,
		})
	}

	return calendars, nil
}
