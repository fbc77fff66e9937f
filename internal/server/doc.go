// Package server exposes onboarding wizards over HTTP.
//
// Each session owns one wizard. Clients drive it by posting the same
// commands the terminal front ends use and read back a state view after
// every change. Sessions live in memory only.
package server
