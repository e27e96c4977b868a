package strictdata_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/yannn/strictdata"
	"github.com/yannn/strictdata/pkg/domain"
)

// ExampleNew demonstrates how to guard an object with a schema held in memory.
func ExampleNew() {
	eng := strictdata.New(
		strictdata.WithClasses(map[string]string{
			"Order": `
				@property int $id
				@enum ["new","paid"] $status
			`,
		}),
	)

	order, err := eng.Object("Order")
	if err != nil {
		log.Fatal(err)
	}

	if err := order.Set("id", "42"); err != nil {
		log.Fatal(err)
	}
	id, _ := order.Get("id")
	fmt.Printf("id=%v\n", id)

	err = order.Set("status", "lost")
	fmt.Println(errors.Is(err, domain.ErrPropertyValueInvalid))
	fmt.Println(err)

	_, err = order.Get("total")
	fmt.Println(err)

	// Output:
	// id=42
	// true
	// Order: Invalid value for property status (lost is not one of [new paid])
	// Order: Property total not exist
}

type Invoice struct{}

func (Invoice) StrictSchema() string {
	return `
		@options StrictNumberTypeCheck
		@property float $amount
	`
}

// ExampleBind demonstrates a Go type carrying its own schema.
func ExampleBind() {
	eng := strictdata.New()

	inv, err := strictdata.Bind(eng, Invoice{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(inv.Class().Name)
	fmt.Println(inv.Set("amount", 9.5) == nil)
	fmt.Println(errors.Is(inv.Set("amount", "9.5"), domain.ErrPropertyTypeInvalid))

	// Output:
	// strictdata_test.Invoice
	// true
	// true
}
