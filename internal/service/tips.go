package service

import "strings"

// CategoryTips returns static sustainability advice for a product category
// family. Unknown categories get general-purpose advice.
func CategoryTips(category string) []string {
	switch strings.ToLower(category) {
	case "electronics":
		return []string{
			"Choose energy-efficient electronics with Energy Star certification",
			"Buy refurbished or recycled electronics when possible",
			"Properly recycle old electronics to recover valuable materials",
			"Use devices in power-saving mode to reduce energy consumption",
		}
	case "clothing", "fashion":
		return []string{
			"Choose organic or recycled fabrics like organic cotton or recycled polyester",
			"Buy from local brands to reduce transportation emissions",
			"Consider second-hand or vintage clothing",
			"Care for clothes properly to extend their lifespan",
		}
	case "food", "groceries":
		return []string{
			"Choose locally sourced and seasonal produce",
			"Reduce meat consumption - plant-based alternatives have lower carbon footprint",
			"Buy organic products to support sustainable farming",
			"Minimize food waste through proper storage and meal planning",
		}
	case "furniture", "home":
		return []string{
			"Choose furniture made from sustainable or recycled materials",
			"Buy durable, high-quality items that last longer",
			"Consider second-hand furniture or upcycling",
			"Look for certifications like FSC for wood products",
		}
	case "beauty", "cosmetics":
		return []string{
			"Choose products with minimal and recyclable packaging",
			"Look for organic and cruelty-free certifications",
			"Buy refillable products to reduce packaging waste",
			"Support brands with sustainable sourcing practices",
		}
	default:
		return []string{
			"Choose products with minimal packaging",
			"Buy locally made products to reduce transportation emissions",
			"Look for recycled or sustainable materials",
			"Consider the product's full lifecycle before purchasing",
			"Properly dispose of products through recycling or composting",
		}
	}
}
