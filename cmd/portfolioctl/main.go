// Command portfolioctl edits portfolio content from the terminal, signed in
// as an admin, through the same controller the web panel uses.
package main

func main() {
	Execute()
}
