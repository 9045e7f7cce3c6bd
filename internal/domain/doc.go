// Package domain contains the core business entities of the task tracker
// and the validation rules that apply to them, independent of how tasks are
// stored or delivered over HTTP.
package domain
