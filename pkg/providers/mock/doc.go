// Package mock provides a scripted model endpoint for testing the
// orchestration loop without actual API calls.
//
// The mock implements both llm.Generator and llm.Chat: enqueue the responses
// the fake model should produce, in order, and assert on the prompts it
// received afterwards. Enqueued errors are returned in place of a response,
// which is how endpoint failures (network, auth, quota) are simulated.
package mock
