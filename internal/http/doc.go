// Package http exposes the calendar editor over a JSON API.
//
// The router exposes the following endpoints:
//   - GET /events, POST /events: list the collection or add an event. Bodies
//     exchange the `eventDTO` payload defined in event_handler.go.
//   - PUT|PATCH /events/{id}: merge the fields present in the body into the
//     event. Unknown ids are inserted unless the store runs in strict mode, in
//     which case 404 is returned.
//   - DELETE /events/{id}: remove the event. Always 204.
//   - GET /selection: the selected event id, the resolved event and the
//     selected date.
//   - PUT|DELETE /selection/event, PUT|DELETE /selection/date: change or clear
//     the selection. Bodies are {"id"} and {"date"}.
//   - GET /contrast?bg=&prefer=&min_contrast=: recommended foreground color for
//     a background, with ratios against black and white.
//   - GET /events.ics, POST /events.ics: iCalendar export and import.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
