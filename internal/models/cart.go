package models

// CartItem is a snapshot of a product taken when it is added to a cart.
// The price fields are refreshed whenever the same product is added again,
// so a later discount change is captured for existing entries.
type CartItem struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	Price         float64         `json:"price"`
	OriginalPrice float64         `json:"originalPrice"`
	Image         string          `json:"image"`
	Quantity      int             `json:"quantity"`
	Category      ProductCategory `json:"category"`
	FreeDelivery  bool            `json:"freeDelivery"`
}

// Subtotal returns the line total for the item
func (ci *CartItem) Subtotal() float64 {
	return ci.Price * float64(ci.Quantity)
}

// Cart holds the items a shopper has selected
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add puts a product into the cart. If an item with the same product id
// already exists its quantity is incremented by one and its price fields
// are refreshed from the product; otherwise a new entry with quantity 1
// is appended.
func (c *Cart) Add(p *Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			c.Items[i].Price = p.EffectivePrice()
			c.Items[i].OriginalPrice = p.Price
			c.Items[i].FreeDelivery = p.FreeDelivery
			return
		}
	}

	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}

	c.Items = append(c.Items, CartItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.EffectivePrice(),
		OriginalPrice: p.Price,
		Image:         image,
		Quantity:      1,
		Category:      p.Category,
		FreeDelivery:  p.FreeDelivery,
	})
}

// Remove drops all entries matching the product id
func (c *Cart) Remove(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// UpdateQuantity adjusts an item's quantity by delta, reporting whether
// the item was found. The quantity never drops below 1; removal is the
// only way to reach zero.
func (c *Cart) UpdateQuantity(productID string, delta int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			newQuantity := c.Items[i].Quantity + delta
			if newQuantity < 1 {
				newQuantity = 1
			}
			c.Items[i].Quantity = newQuantity
			return true
		}
	}
	return false
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Count returns the sum of quantities across all items
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Total returns the sum of price times quantity across all items
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
