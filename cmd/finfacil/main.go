// Command finfacil is the operator CLI for the goals store: it seeds demo
// data and prints goals, progress and notifications.
package main

func main() {
	Execute()
}
