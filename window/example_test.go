package window

import "fmt"

func ExampleGenerate() {
	w, _ := Generate(TypeHann, 4, 0)
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}

func ExampleKaiser() {
	w, _ := Kaiser(5, 8)
	fmt.Printf("center %.2f edge %.4f\n", w[2], w[0])
	// Output:
	// center 1.00 edge 0.0023
}
