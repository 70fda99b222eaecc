// Package browser defines the small surface of a browser driver the cleaner
// depends on. The playwright subpackage implements it against a real headed
// Chromium; tests implement it in memory.
package browser
