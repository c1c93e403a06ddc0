// Package handler serves registered instructor pages over net/http. Pages are
// rendered into a buffer first so clients never see partial markup, and every
// request is logged through zap.
package handler
