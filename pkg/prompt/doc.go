// Package prompt collects intake answers on a terminal. A Session asks for
// each field of the form catalog through a PromptDriver, re-prompts with the
// rule message until the answer is valid, shows the review and submits.
//
// The default driver is backed by github.com/AlecAivazis/survey/v2; tests and
// alternative front ends inject their own driver through WithPromptDriver.
package prompt
