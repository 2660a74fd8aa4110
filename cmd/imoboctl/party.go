package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imobo/imobo/internal/owner"
	ownerStore "github.com/imobo/imobo/internal/owner/store"
	"github.com/imobo/imobo/internal/tenant"
	tenantStore "github.com/imobo/imobo/internal/tenant/store"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Manage tenants",
}

var tenantAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := tenant.NewService(tenantStore.New(a.db))

		t, err := svc.Create(cmd.Context(), tenant.CreateParams{
			Name:        tenantAddFlags.name,
			Email:       tenantAddFlags.email,
			Phone:       tenantAddFlags.phone,
			DocumentRef: tenantAddFlags.document,
		})
		if err != nil {
			return err
		}

		fmt.Printf("created tenant %s\n", t.ID)

		return nil
	},
}

var tenantAddFlags struct {
	name     string
	email    string
	phone    string
	document string
}

var tenantListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := tenant.NewService(tenantStore.New(a.db))

		tenants, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		for _, t := range tenants {
			fmt.Printf("%s  %s (%s %s)\n", t.ID, t.Name, t.Email, t.Phone)
		}

		return nil
	},
}

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Manage property owners",
}

var ownerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an owner",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := owner.NewService(ownerStore.New(a.db))

		o, err := svc.Create(cmd.Context(), owner.CreateParams{
			Name:      ownerAddFlags.name,
			Email:     ownerAddFlags.email,
			Phone:     ownerAddFlags.phone,
			PayoutRef: ownerAddFlags.payoutRef,
		})
		if err != nil {
			return err
		}

		fmt.Printf("created owner %s\n", o.ID)

		return nil
	},
}

var ownerAddFlags struct {
	name      string
	email     string
	phone     string
	payoutRef string
}

var ownerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List owners",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := owner.NewService(ownerStore.New(a.db))

		owners, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		for _, o := range owners {
			fmt.Printf("%s  %s (%s %s)\n", o.ID, o.Name, o.Email, o.Phone)
		}

		return nil
	},
}

func init() {
	tenantAddCmd.Flags().StringVar(&tenantAddFlags.name, "name", "", "tenant name")
	tenantAddCmd.Flags().StringVar(&tenantAddFlags.email, "email", "", "email address")
	tenantAddCmd.Flags().StringVar(&tenantAddFlags.phone, "phone", "", "phone number")
	tenantAddCmd.Flags().StringVar(&tenantAddFlags.document, "document", "", "identity document reference")
	tenantAddCmd.MarkFlagRequired("name")

	ownerAddCmd.Flags().StringVar(&ownerAddFlags.name, "name", "", "owner name")
	ownerAddCmd.Flags().StringVar(&ownerAddFlags.email, "email", "", "email address")
	ownerAddCmd.Flags().StringVar(&ownerAddFlags.phone, "phone", "", "phone number")
	ownerAddCmd.Flags().StringVar(&ownerAddFlags.payoutRef, "payout-ref", "", "payout account reference")
	ownerAddCmd.MarkFlagRequired("name")

	tenantCmd.AddCommand(tenantAddCmd, tenantListCmd)
	ownerCmd.AddCommand(ownerAddCmd, ownerListCmd)
	rootCmd.AddCommand(tenantCmd, ownerCmd)
}
