// Command dramctrl runs cores against simulated DRAM memory controllers and
// reports per-controller latency statistics.
package main

func main() {
	Execute()
}
