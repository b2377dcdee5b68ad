package api

import (
	"context"
	"net/url"
)

// Customers fetches the customer list.
func (c *Client) Customers(ctx context.Context) ([]CustomerSummary, error) {
	var customers []CustomerSummary
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// Customer fetches one customer's detail by email.
func (c *Client) Customer(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, "/customers/"+url.PathEscape(email), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Events fetches all events with their attendee lists.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.get(ctx, "/events", &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Courses fetches all courses with their buyer lists.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.get(ctx, "/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Analytics fetches the aggregate conversion analytics.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var analytics Analytics
	if err := c.get(ctx, "/analytics", &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}
