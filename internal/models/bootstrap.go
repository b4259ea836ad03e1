package models

import "time"

// DemoPassword is the shared placeholder credential accepted for every
// bootstrap account. This is not a real authentication mechanism.
const DemoPassword = "password"

// BootstrapCategories returns the fixed category seed. Categories always
// come from this set; there is no durable override.
func BootstrapCategories() []Category {
	return []Category{
		{
			ID:          "cat-1",
			Title:       "Getting Started",
			Slug:        "getting-started",
			Order:       1,
			Description: "Learn how to get started with our hosting services",
		},
		{
			ID:          "cat-2",
			Title:       "Minecraft Hosting",
			Slug:        "minecraft-hosting",
			Order:       2,
			Description: "Documentation for Minecraft server hosting",
		},
		{
			ID:          "cat-3",
			Title:       "Game Servers",
			Slug:        "game-servers",
			Order:       3,
			Description: "Documentation for various game server hosting options",
		},
		{
			ID:          "cat-4",
			Title:       "Account Management",
			Slug:        "account-management",
			Order:       4,
			Description: "Managing your account and billing information",
		},
		{
			ID:          "cat-5",
			Title:       "FAQ & Troubleshooting",
			Slug:        "faq-troubleshooting",
			Order:       5,
			Description: "Frequently asked questions and troubleshooting guides",
		},
	}
}

// BootstrapPages returns the fixed page seed used when durable storage is
// empty or unreadable.
func BootstrapPages() []DocPage {
	return []DocPage{
		{
			ID:    "page-1",
			Title: "Welcome to Our Hosting Documentation",
			Slug:  "welcome",
			Content: `# Welcome to Our Hosting Documentation

Thank you for choosing our hosting services. This documentation will help you get started with our platform and make the most of your hosting experience.

## What We Offer

Our hosting platform provides a wide range of services:

- Game server hosting for popular games
- Web hosting with excellent performance
- VPS solutions for your custom needs
- Dedicated servers for maximum power

## Getting Support

If you need help with any aspect of our services, you can:

1. Browse through this documentation
2. Contact our support team via live chat
3. Submit a support ticket through your control panel
4. Join our community Discord server

We're here to help you succeed with your projects!
`,
			CategoryID:  "cat-1",
			Order:       1,
			CreatedAt:   time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
			PublishedAt: timePtr(time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)),
			Excerpt:     "Get started with our hosting documentation",
			Author:      "Admin User",
		},
		{
			ID:    "page-2",
			Title: "Setting Up Your First Server",
			Slug:  "setting-up-first-server",
			Content: `# Setting Up Your First Server

This guide will walk you through the process of setting up your first server on our platform.

## Step 1: Choose Your Plan

Start by selecting the appropriate hosting plan for your needs. Consider:
- Expected number of users
- Resource requirements (RAM, CPU, storage)
- Budget constraints

## Step 2: Server Configuration

After purchasing a plan, you'll need to configure your server:
1. Log in to your control panel
2. Navigate to "Server Management"
3. Click "Create New Server"
4. Select your desired configuration options
5. Click "Deploy Server"

## Step 3: Access Your Server

Once deployed, you can access your server through:
- SSH (for VPS/dedicated servers)
- Control panel interface
- FTP for file uploads
- Game-specific control panels for game servers

## Next Steps

After setting up your server, you might want to:
- Configure automatic backups
- Set up monitoring alerts
- Configure domains (if applicable)
- Install additional software
`,
			CategoryID:  "cat-1",
			Order:       2,
			CreatedAt:   time.Date(2023, time.January, 16, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC),
			PublishedAt: timePtr(time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC)),
			Excerpt:     "Learn how to setup your first server",
			Author:      "Admin User",
		},
		{
			ID:    "page-3",
			Title: "Minecraft Server Setup Guide",
			Slug:  "minecraft-server-setup",
			Content: `# Minecraft Server Setup Guide

Setting up a Minecraft server with our hosting service is quick and easy. Follow this guide to get your server up and running.

## Prerequisites
- An active hosting account
- A purchased Minecraft server plan
- Basic knowledge of Minecraft server management

## Installation Process

1. **Log in to your control panel**
   Access your hosting control panel using your account credentials.

2. **Navigate to Minecraft services**
   Find the Minecraft section in your dashboard.

3. **Select server type**
   Choose between:
   - Vanilla Minecraft
   - Spigot
   - Paper
   - Forge
   - Fabric
   - Modded servers (FTB, etc.)

4. **Configure server settings**
   - Server name
   - Server version
   - Allocated RAM
   - Initial world settings

5. **Start your server**
   Click the "Start" button to initialize your Minecraft server.

## Common Configuration Options

### server.properties
` + "```properties\ndifficulty=normal\npvp=true\nmax-players=20\nspawn-protection=16\n```" + `

### Memory Allocation
We recommend allocating at least 4GB RAM for a standard Minecraft server with 5-10 players.
`,
			CategoryID:  "cat-2",
			Order:       1,
			CreatedAt:   time.Date(2023, time.February, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, time.April, 12, 0, 0, 0, 0, time.UTC),
			PublishedAt: timePtr(time.Date(2023, time.February, 8, 0, 0, 0, 0, time.UTC)),
			Excerpt:     "Complete guide for setting up a Minecraft server",
			Author:      "Admin User",
		},
		{
			ID:    "page-4",
			Title: "Managing Your Billing Information",
			Slug:  "managing-billing",
			Content: `# Managing Your Billing Information

This guide will help you manage your billing information, payment methods, and subscriptions.

## Accessing Billing Information

1. Log in to your account dashboard
2. Navigate to the "Account" section
3. Click on "Billing" in the sidebar

## Payment Methods

### Adding a Payment Method
1. Go to "Payment Methods"
2. Click "Add Payment Method"
3. Choose between credit card, PayPal, or cryptocurrency
4. Enter your payment details
5. Click "Save"

## Managing Subscriptions

All your active subscriptions appear on the "Subscriptions" tab. Note that
canceling a subscription does not provide an immediate refund and your
service will continue until the end of your billing period.

## Invoices and Payment History

Your complete payment history is available under the "Invoices" tab.

## Need Help?

If you encounter any issues with billing or payments, please contact our support team through:
- Live chat
- Email: billing@example.com
- Support ticket
`,
			CategoryID:  "cat-4",
			Order:       1,
			CreatedAt:   time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC),
			PublishedAt: timePtr(time.Date(2023, time.March, 12, 0, 0, 0, 0, time.UTC)),
			Excerpt:     "Learn how to manage your billing information and subscriptions",
			Author:      "Admin User",
		},
	}
}

// BootstrapUsers returns the fixed demo accounts used when the durable user
// collection is empty or unreadable.
func BootstrapUsers() []User {
	return []User{
		{
			ID:     "user-1",
			Email:  "admin@example.com",
			Name:   "Admin User",
			Role:   RoleAdmin,
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=admin",
		},
		{
			ID:     "user-2",
			Email:  "user@example.com",
			Name:   "Regular User",
			Role:   RoleUser,
			Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=user",
		},
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
